package models

// All lists every persisted model, in dependency order. Used by sqlite
// auto-migration in development and by repository tests.
func All() []any {
	return []any{
		&User{},
		&Cart{},
		&Product{},
		&Order{},
		&OrderItem{},
	}
}
