package server

import (
	"bytes"
	"sync"
)

// responseBufferPool holds bytes.Buffer for building responses.
var responseBufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Buffers larger than this are discarded instead of pooled.
const maxPoolBufferSize = 4096
