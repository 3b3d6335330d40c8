package tokenstore

import "fmt"

// New создаёт хранилище по Config.Driver; пустой драйвер — memory.
func New(cfg Config) (Store, error) {
	const op = "internal/tokenstore/New"

	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		st, err := NewFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return st, nil
	case DriverRedis:
		st, err := NewRedis(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%s: unsupported token store driver: %s", op, driver)
	}
}
