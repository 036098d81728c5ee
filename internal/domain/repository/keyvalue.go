package repository

import "context"

// KeyValueStore define el puerto de almacenamiento durable (DIP): una clave,
// un valor serializado. Los casos de uso escriben la lista completa de cada
// colección bajo su propia clave y solo actualizan memoria cuando Set resolvió
// con éxito, así la copia en memoria nunca adelanta a la durable.
type KeyValueStore interface {
	// Get devuelve el valor y si la clave existe. Clave ausente no es error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set escribe el valor de forma durable antes de devolver.
	Set(ctx context.Context, key, value string) error
}
