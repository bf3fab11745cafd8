package route

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/crudgen/pkg/naming"
)

const routesFile = "routes/api.php"

func TestLine(t *testing.T) {
	names := naming.Resolve("TestResource", naming.DefaultLayout())
	assert.Equal(t, `Route::resource('test-resources', 'App\Http\Controllers\TestResourceController');`, Line(names))
}

func TestRegisterAppends(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, routesFile, []byte("<?php\n\nuse Illuminate\\Support\\Facades\\Route;\n"), 0o644))
	names := naming.Resolve("Order", naming.DefaultLayout())

	require.NoError(t, Register(fsys, routesFile, names))

	got, err := afero.ReadFile(fsys, routesFile)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nuse Illuminate\\Support\\Facades\\Route;\n\nRoute::resource('orders', 'App\\Http\\Controllers\\OrderController');", string(got))

	n, err := Count(fsys, routesFile, names)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisterTwiceDuplicates(t *testing.T) {
	fsys := afero.NewMemMapFs()
	names := naming.Resolve("Order", naming.DefaultLayout())

	require.NoError(t, Register(fsys, routesFile, names))
	require.NoError(t, Register(fsys, routesFile, names))

	n, err := Count(fsys, routesFile, names)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRegisterCreatesMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	names := naming.Resolve("Invoice", naming.DefaultLayout())

	require.NoError(t, Register(fsys, routesFile, names))

	got, err := afero.ReadFile(fsys, routesFile)
	require.NoError(t, err)
	assert.Contains(t, string(got), "<?php\n")
	assert.Contains(t, string(got), Line(names))
}

func TestRegisterReadOnly(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	names := naming.Resolve("Order", naming.DefaultLayout())

	require.Error(t, Register(fsys, routesFile, names))
}
