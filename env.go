package main

import (
	"github.com/hashicorp/go-hclog"

	"floc/skinswap/pipeline"
	"floc/skinswap/slot"
)

// newEnv builds the content table, the slots and the pipeline for cnf and
// registers every content id with the http host
func newEnv(cnf Configuration, cf string, l hclog.Logger) (*env, error) {
	table, err := pipeline.DefaultTable(cnf.sizes())
	if err != nil {
		return nil, err
	}

	e := &env{
		cnf:  cnf,
		cf:   cf,
		log:  l,
		host: newHost(l.Named("host")),
	}
	e.pipe = pipeline.New(table, slot.New(), pipeline.Options{
		Logger:       l.Named("pipeline"),
		ConvertIcons: cnf.ConvertIcons,
		Prompter:     e,
	})

	if err := e.pipe.Register(e.host); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *env) config() Configuration {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.cnf
}

// selectSlot resolves p against skin_dir and selects it for slot n
func (e *env) selectSlot(n int, p string) (string, error) {
	p = e.config().skinPath(p)
	if err := e.pipe.Store().Select(n, p); err != nil {
		return "", err
	}

	e.log.Info("slot selected", "slot", n, "path", p)
	return p, nil
}
