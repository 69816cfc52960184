package main

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ja7ad/frontier/pkg/render"
	"github.com/ja7ad/frontier/pkg/scaling"
	"github.com/ja7ad/frontier/pkg/types"
	"github.com/ja7ad/frontier/pkg/util"
)

const defaultOut = "scaling_frontier.png"

type opts struct {
	out        string
	paramsPath string
	points     int

	// exports
	csvPath  string
	jsonPath string
	htmlPath string

	logLevel  string
	logFormat string
}

type row struct {
	N       float64 `json:"n"`
	COpt    float64 `json:"c_opt"`
	DOpt    float64 `json:"d_opt"`
	LossOpt float64 `json:"loss_opt"`
	LossInf float64 `json:"loss_inf"`
}

type report struct {
	Params scaling.Params `json:"params"`
	Bands  []float64      `json:"bands"`
	Rows   []row          `json:"rows"`
}

func main() {
	var o opts

	if err := newRootCmd(&o).Execute(); err != nil {
		log := newLogger(os.Stderr, "error", o.logFormat)
		log.Error().Err(err).Msg("frontier failed")
		os.Exit(1)
	}
}

func newRootCmd(o *opts) *cobra.Command {
	root := &cobra.Command{
		Use:   "frontier",
		Short: "Render the compute-optimal scaling frontier",
		Long: `frontier evaluates the power-law loss model

  L(N, D) = L_0 + (N_c/N)^alpha_N + (D_c/D)^alpha_D,  C = 6ND

over log-spaced model sizes, and draws the compute-optimal frontier and the
infinite-compute bound on a log-log chart with four shaded loss bands.

With no flags it writes scaling_frontier.png to the working directory.

Examples:
  frontier
  frontier --out charts/frontier.svg --params chinchilla.yaml
  frontier --csv frontier.csv --json frontier.json --html frontier.html`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			return run(*o, cmd.OutOrStdout(), log)
		},
	}

	root.Flags().StringVarP(&o.out, "out", "o", defaultOut, "chart path; format from extension (png, svg, pdf, jpg, tif, eps)")
	root.Flags().StringVarP(&o.paramsPath, "params", "p", "", "YAML file with l_0, n_c, d_c, alpha_n, alpha_d (missing keys keep defaults)")
	root.Flags().IntVarP(&o.points, "points", "n", scaling.SweepCount, "number of log-spaced model sizes in [1e8, 1e13]")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write frontier rows to CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write frontier rows to JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write frontier summary, chart and rows to HTML file")

	root.Flags().StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.Flags().StringVar(&o.logFormat, "log-format", "console", "log format (console, json)")

	return root
}

func run(o opts, stdout io.Writer, log zerolog.Logger) error {
	params := scaling.DefaultParams()
	if o.paramsPath != "" {
		p, err := scaling.LoadParams(o.paramsPath)
		if err != nil {
			return err
		}
		params = p
	}
	log.Debug().
		Float64("l_0", params.L0).
		Str("n_c", types.Count(params.Nc).Humanized()).
		Str("d_c", types.Count(params.Dc).Humanized()).
		Float64("alpha_n", params.AlphaN).
		Float64("alpha_d", params.AlphaD).
		Msg("scaling params")

	ns, err := scaling.Sweep(scaling.SweepMin, scaling.SweepMax, o.points)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	m := scaling.New(&params)
	ch := render.DefaultChart()

	f, err := ch.Build(m, ns)
	if err != nil {
		return fmt.Errorf("frontier: %w", err)
	}
	for i, n := range ch.RefSizes {
		c, l := m.OptimalCompute(n)
		log.Info().
			Str("n", types.Count(n).Humanized()).
			Float64("c_opt", c).
			Float64("loss_opt", l).
			Float64("loss_inf", m.InfiniteComputeLoss(n)).
			Int("ref", i).
			Msg("reference size")
	}
	log.Debug().Floats64("edges", f.Bands.Edges[:]).Msg("bands")

	if err := ch.Save(o.out, f); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	fmt.Fprintf(stdout, "Plot saved to: %s\n", o.out)

	rows := toRows(f)

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, rows); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		log.Info().Str("path", o.csvPath).Int("rows", len(rows)).Msg("csv written")
	}
	if o.jsonPath != "" {
		rep := report{Params: params, Bands: f.Bands.Edges[:], Rows: rows}
		if err := writeJSON(o.jsonPath, rep); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		log.Info().Str("path", o.jsonPath).Int("rows", len(rows)).Msg("json written")
	}
	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, ch, f, params, rows); err != nil {
			return fmt.Errorf("html: %w", err)
		}
		log.Info().Str("path", o.htmlPath).Msg("html written")
	}

	return nil
}

func toRows(f render.Frontier) []row {
	rows := make([]row, len(f.Optimal.Points))
	for i, p := range f.Optimal.Points {
		rows[i] = row{
			N:       p.N,
			COpt:    p.C,
			DOpt:    scaling.DataTokens(p.N, p.C),
			LossOpt: p.L,
			LossInf: f.Infinite.Points[i].L,
		}
	}
	return rows
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func writeCSV(path string, rows []row) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"n", "c_opt", "d_opt", "loss_opt", "loss_inf"})
	for _, r := range rows {
		_ = w.Write([]string{
			util.FmtFloat(r.N), util.FmtFloat(r.COpt), util.FmtFloat(r.DOpt),
			util.FmtFloat(r.LossOpt), util.FmtFloat(r.LossInf),
		})
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, rep report) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

type refView struct {
	Label   string
	COpt    float64
	LossOpt float64
	LossInf float64
}

func writeHTML(path string, ch *render.Chart, fr render.Frontier, params scaling.Params, rows []row) error {
	type view struct {
		Params scaling.Params
		Refs   []refView
		Bands  []float64
		Chart  template.URL
		Rows   []row
	}

	var img bytes.Buffer
	if err := ch.WriteTo(&img, "png", fr); err != nil {
		return err
	}

	m := scaling.New(&params)
	var refs []refView
	for _, n := range ch.RefSizes {
		c, l := m.OptimalCompute(n)
		refs = append(refs, refView{
			Label:   types.Count(n).Humanized(),
			COpt:    c,
			LossOpt: l,
			LossInf: m.InfiniteComputeLoss(n),
		})
	}

	var buf bytes.Buffer
	data := view{
		Params: params,
		Refs:   refs,
		Bands:  fr.Bands.Edges[:],
		Chart:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Bytes())),
		Rows:   rows,
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}

	f, err := create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Scaling Frontier</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
img{max-width:100%}
.small{color:#555}
</style>

<h1>Scaling Frontier</h1>

<p class="small">
L = L_0 + (N_c/N)^&alpha;_N + (D_c/D)^&alpha;_D, &nbsp; C = 6ND &nbsp;|&nbsp; Rows: {{len .Rows}}
</p>

<h2>Parameters</h2>
<ul>
<li>L_0: {{.Params.L0}}</li>
<li>N_c: {{printf "%.4g" .Params.Nc}}</li>
<li>D_c: {{printf "%.4g" .Params.Dc}}</li>
<li>&alpha;_N: {{.Params.AlphaN}}</li>
<li>&alpha;_D: {{.Params.AlphaD}}</li>
</ul>

<h2>Reference sizes</h2>
<ul>
{{range .Refs}}
<li>{{.Label}}: C_opt {{printf "%.4g" .COpt}} FLOPs, L_opt {{printf "%.4f" .LossOpt}}, L_inf {{printf "%.4f" .LossInf}}</li>
{{end}}
</ul>

<h2>Bands</h2>
<p class="small">{{range $i, $b := .Bands}}{{if $i}} &rarr; {{end}}{{printf "%.4f" $b}}{{end}}</p>

<img src="{{.Chart}}" alt="scaling frontier">

<h2>Frontier</h2>
<table>
<thead>
<tr><th>N</th><th>C_opt</th><th>D_opt</th><th>L_opt</th><th>L_inf</th></tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td style="text-align:left">{{printf "%.4g" .N}}</td>
<td>{{printf "%.4g" .COpt}}</td>
<td>{{printf "%.4g" .DOpt}}</td>
<td>{{printf "%.4f" .LossOpt}}</td>
<td>{{printf "%.4f" .LossInf}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
