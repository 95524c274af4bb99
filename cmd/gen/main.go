// Command gen generates the type-safe GORM query package for the storefront models.
package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.ProductModel{},
		model.CustomerModel{},
		model.CartLineModel{},
		model.OrderRecordModel{},
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       "./internal/infra/persistence/postgres/query",
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: false,
	})

	g.ApplyBasic(models...)

	g.Execute()
}
