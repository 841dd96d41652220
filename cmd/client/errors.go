package main

import (
	"fmt"

	"github.com/MKhiriev/go-student-registry/internal/adapter"
)

var errNoToken = fmt.Errorf("%w: pass --token or set REGISTRY_TOKEN", adapter.ErrNotLoggedIn)
