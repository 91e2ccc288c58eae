package bus

// Keyer lo implementa todo lo que se publica con clave de partición.
type Keyer interface {
	PartitionKey() string
}
