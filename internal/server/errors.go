package server

import "errors"

// errNoServersAreCreated is returned by NewServer when it gets no HTTP
// handler to serve.
var errNoServersAreCreated = errors.New("no servers are created")
