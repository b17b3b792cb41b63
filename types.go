package main

import (
	"net"
	"net/http"
	"sync"

	"github.com/hashicorp/go-hclog"

	"floc/skinswap/pipeline"
)

type (

	// Unix ipc listener
	ipcListener struct {
		listener net.Listener
		quit     chan interface{}
		wg       sync.WaitGroup
		log      hclog.Logger

		mu    sync.Mutex
		conns map[int]net.Conn
	}

	// ipc command, takes the arguments after the command name and returns
	// the text sent back to the client
	cmdHandlerFunc func([]string, string) string
	cmdHandler     map[string]cmdHandlerFunc

	// Wrap responsewriter in order to log http requests and reponses
	rwWrapper struct {
		http.ResponseWriter
		status  int
		written int
		done    bool
	}

	// Json config format
	Configuration struct {
		Listen   string `json:"listen"`
		Socket   string `json:"socket"`
		SkinDir  string `json:"skin_dir"`
		LogLevel string `json:"log_level"`

		// largest skin scale a primary texture has room for
		MaxSkinScale int  `json:"max_skin_scale"`
		ConvertIcons bool `json:"convert_icons"`

		Portraits struct {
			Small  int `json:"small"`
			Medium int `json:"medium"`
			Large  int `json:"large"`
		} `json:"portraits"`

		// command printing the path of a skin to use, run when the game asks
		// for a primary texture. empty disables prompting
		Selector string `json:"selector"`
	}

	// one content id handed to us by the pipeline
	registration struct {
		ID       uint64 `json:"id"`
		Capacity uint32 `json:"capacity"`
		Format   string `json:"format"`

		cb pipeline.Callback
	}

	// host side of content registration, served over http
	host struct {
		mu   sync.RWMutex
		regs map[uint64]registration
		log  hclog.Logger
	}

	// everything a handler needs
	env struct {
		mu  sync.RWMutex
		cnf Configuration
		cf  string // config file, for reloads

		log  hclog.Logger
		pipe *pipeline.Pipeline
		host *host
	}
)
