package student

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Контракт хранилища реестра. Реализация - infrastructure/persistence/jsonfile.
// ══════════════════════════════════════════════════════════════════════════════

// Repository загружает и сохраняет реестр целиком.
type Repository interface {
	// Load всегда возвращает пригодный реестр. Если данные повреждены,
	// возвращается встроенный набор вместе с ошибкой ErrCorruptData,
	// которую вызывающий код показывает как предупреждение.
	Load(ctx context.Context) (*Roster, error)

	// Save перезаписывает хранилище содержимым реестра.
	// Ошибки оборачиваются в ErrStorage.
	Save(ctx context.Context, r *Roster) error
}
