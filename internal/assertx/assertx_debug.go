//go:build whir_debug

package assertx

func init() {
	Enabled = true
}
