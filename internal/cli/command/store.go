package command

import (
	"errors"

	"github.com/data-respons-solutions/nvram/internal/cli/config"
	"github.com/data-respons-solutions/nvram/internal/core/service"
	"github.com/data-respons-solutions/nvram/internal/format"
	"github.com/data-respons-solutions/nvram/internal/storage"
)

// openStore opens the section selected by --sys. The returned function
// closes the store and its backend; calls after the first are no-ops.
func (st *state) openStore() (*service.Store, func() error, error) {
	if err := config.Verify(st.cfg); err != nil {
		return nil, nil, err
	}
	kind, err := storage.ParseKind(st.cfg.Interface)
	if err != nil {
		return nil, nil, err
	}
	formatKind, err := format.ParseKind(st.cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	opts := st.cfg.StorageOptions()
	opts.Logger = st.logger
	opts.Metrics = st.metrics
	backend, err := storage.New(kind, opts)
	if err != nil {
		return nil, nil, err
	}

	f, err := format.New(formatKind, format.Options{
		MaxSize: st.cfg.MaxSize,
		Logger:  st.logger,
		Metrics: st.metrics,
	})
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	store, err := service.OpenSection(service.Options{
		Backend: backend,
		Format:  f,
		Logger:  st.logger,
		Metrics: st.metrics,
	}, st.role, st.section(kind))
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	closed := false
	closeFn := func() error {
		if closed {
			return nil
		}
		closed = true
		return errors.Join(store.Close(), backend.Close())
	}
	return store, closeFn, nil
}

func (st *state) section(kind storage.Kind) service.Section {
	return service.Section{
		A: st.cfg.Section(kind, st.role, config.SlotA),
		B: st.cfg.Section(kind, st.role, config.SlotB),
	}
}
