package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(ttt *testing.T) {
	tests := []struct {
		resource  string
		singular  string
		routePath string
		table     string
	}{
		{"Order", "Order", "orders", "orders"},
		{"TestResource", "TestResource", "test-resources", "test_resources"},
		{"order_item", "OrderItem", "order-items", "order_items"},
		{"Category", "Category", "categories", "categories"},
		{"Box", "Box", "boxes", "boxes"},
		{"Orders", "Order", "orders", "orders"},
	}
	for _, tt := range tests {
		ttt.Run(tt.resource, func(t *testing.T) {
			n := Resolve(tt.resource, DefaultLayout())
			assert.Equal(t, tt.singular, n.Singular)
			assert.Equal(t, tt.routePath, n.RoutePath)
			assert.Equal(t, tt.table, n.Table)
			assert.Equal(t, "*_create_"+tt.table+"_table.php", n.MigrationGlob)
		})
	}
}

func TestResolvePathsAndClasses(t *testing.T) {
	n := Resolve("Order", DefaultLayout())

	assert.Equal(t, "app/Models/Order.php", n.ModelPath)
	assert.Equal(t, "app/Http/Controllers/OrderController.php", n.ControllerPath)
	assert.Equal(t, "app/Http/Resources/OrderResource.php", n.ResourcePath)
	assert.Equal(t, "app/Http/Resources/OrderCollection.php", n.CollectionPath)

	assert.Equal(t, `App\Models\Order`, n.ModelClass)
	assert.Equal(t, `App\Http\Controllers\OrderController`, n.ControllerClass)
	assert.Equal(t, `App\Http\Resources\OrderResource`, n.ResourceClass)
	assert.Equal(t, `App\Http\Resources\OrderCollection`, n.CollectionClass)
}

func TestResolveLegacyModelsDir(t *testing.T) {
	layout := DefaultLayout()
	layout.ModelsDir = "app"

	n := Resolve("Order", layout)
	assert.Equal(t, "app/Order.php", n.ModelPath)
	assert.Equal(t, `App\Order`, n.ModelClass)
}

func TestNamespace(t *testing.T) {
	layout := Layout{RootNamespace: `Acme\`, AppDir: "src/"}

	require.Equal(t, `Acme\Http\Controllers\OrderController`, Namespace(layout, "src/Http/Controllers/OrderController.php"))
	require.Equal(t, `Acme\Http\Controllers\OrderController`, Namespace(layout, `src\Http\Controllers\OrderController.php`))
	require.Equal(t, "Acme", Namespace(layout, "src"))
	require.Equal(t, `Acme\Http\Controllers`, ClassNamespace(Namespace(layout, "src/Http/Controllers/OrderController.php")))
	require.Equal(t, "", ClassNamespace("Order"))
}

func TestStudly(t *testing.T) {
	assert.Equal(t, "HTTPLog", Studly("HTTPLog"))
	assert.Equal(t, "OrderItem", Studly("order-item"))
	assert.Equal(t, "Order", Studly("order"))
	assert.Equal(t, "", Studly(""))
}
