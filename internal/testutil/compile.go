package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/compiler"
	"github.com/vk/keygridgo/internal/hcl"
	"github.com/vk/keygridgo/internal/registry"
	"github.com/vk/keygridgo/modules/rust"
	"github.com/vk/keygridgo/modules/yaml"
)

// Compile compiles src with the built-in tables and every output module.
func Compile(t *testing.T, src string) *compiler.Result {
	t.Helper()

	tbl, err := hcl.NewLoader().Load(context.Background())
	require.NoError(t, err)
	r := registry.New()
	r.RegisterModules(&rust.Module{}, &yaml.Module{})

	result, err := compiler.New(tbl, r).Compile(context.Background(), "test.kbd", []byte(src))
	require.NoError(t, err)
	return result
}
