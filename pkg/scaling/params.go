package scaling

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/frontier/pkg/util"
)

// Validate reports whether every coefficient is finite and > 0.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"l_0", p.L0},
		{"n_c", p.Nc},
		{"d_c", p.Dc},
		{"alpha_n", p.AlphaN},
		{"alpha_d", p.AlphaD},
	}
	for _, f := range fields {
		if !util.AllFinite(f.v) || f.v <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrBadParam, f.name, f.v)
		}
	}
	return nil
}

// LoadParams reads coefficients from a YAML file. Keys that are absent keep
// their default value.
//
//	l_0: 1.69
//	n_c: 4.714e7
//	d_c: 2.158e9
//	alpha_n: 0.34
//	alpha_d: 0.28
func LoadParams(path string) (Params, error) {
	p := DefaultParams()

	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read params: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse params %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("params %s: %w", path, err)
	}
	return p, nil
}
