package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/crudgen/pkg/action/api"
	. "github.com/cmmoran/crudgen/pkg/generator"
)

const wantModel = `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Factories\HasFactory;
use Illuminate\Database\Eloquent\Model;
use Illuminate\Database\Eloquent\SoftDeletes;

class Order extends Model
{
    use HasFactory, SoftDeletes;

    protected $fillable = ['name', 'total', 'meta'];

    /**
     * Set the meta attribute as JSON.
     *
     * @param  mixed  $value
     * @return void
     */
    public function setMetaAttribute($value)
    {
        $this->attributes['meta'] = json_encode($value);
    }

    /**
     * Get the meta attribute as decoded JSON.
     *
     * @param  string  $value
     * @return mixed
     */
    public function getMetaAttribute($value)
    {
        return json_decode($value, true);
    }

    /**
     * Filter data by fillable.
     *
     * @return mixed
     */
    public function scopeFilter($query, array $filters)
    {
        foreach ($filters as $field => $value) {
            if (in_array($field, $this->fillable) && !empty($value)) {
                $query->where($field, $value);
            }
        }
        return $query;
    }
}
`

const wantResource = `<?php

namespace App\Http\Resources;

use Illuminate\Http\Resources\Json\JsonResource;

class OrderResource extends JsonResource
{
    /**
     * Transform the resource into an array.
     *
     * @param  \Illuminate\Http\Request  $request
     * @return array
     */
    public function toArray($request)
    {
        if (empty($this->resource)) {
            return [];
        }

        return [
            'name' => $this->name,
            'total' => $this->total,
            'meta' => $this->meta,
        ];
    }
}
`

const wantMigrationUp = `        Schema::create('orders', function (Blueprint $table) {
            $table->id();
            $table->string('name');
            $table->decimal('total');
            $table->json('meta');
            $table->timestamps();
            $table->softDeletes();
        });`

const wantRoutes = `<?php

use Illuminate\Support\Facades\Route;

Route::resource('orders', 'App\Http\Controllers\OrderController');`

func TestGenerate(ttt *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  map[string]string
	}{
		{
			name: "laravel 10 project",
			files: map[string]string{
				"composer.lock":             `{"packages":[{"name":"laravel/framework","version":"v10.48.2"}]}`,
				"app/Models/.gitkeep":       "",
				"database/migrations/.keep": "",
			},
			want: map[string]string{
				"app/Models/Order.php":                 wantModel,
				"app/Http/Resources/OrderResource.php": wantResource,
				"routes/api.php":                       wantRoutes,
			},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				p := filepath.Join(dir, filepath.FromSlash(name))
				require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
				require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
			}

			opts := NewOptions(WithProject(dir), WithDriver(DriverNative))
			res, err := api.Generate(context.Background(), opts, "Order", "name:string, total:decimal, meta:json", &bytes.Buffer{})
			require.NoError(t, err)
			require.Equal(t, "done", res.Run.Status())

			for name, want := range tt.want {
				got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
				require.NoError(t, err)
				if diff := cmp.Diff(want, string(got)); diff != "" {
					t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
				}
			}

			migrations, err := filepath.Glob(filepath.Join(dir, "database", "migrations", "*_create_orders_table.php"))
			require.NoError(t, err)
			require.Len(t, migrations, 1)
			got, err := os.ReadFile(migrations[0])
			require.NoError(t, err)
			require.Contains(t, string(got), wantMigrationUp)

			_, err = os.Stat(filepath.Join(dir, ".crudgen", "manifest.yaml"))
			require.NoError(t, err)
		})
	}
}
