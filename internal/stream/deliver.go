package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/logging"
	"github.com/souravslg/Downfiles/internal/metrics"
)

// chunkSize is the copy granularity; each chunk is flushed so clients
// see bytes while large artifacts are still being read.
const chunkSize = 256 * 1024

// ErrDeliveryRead marks an artifact that disappeared or became
// unreadable during delivery.
var ErrDeliveryRead = errors.New("artifact unreadable")

// Deliver streams the artifact to the client and removes it on every
// exit path. It returns the bytes written; once the count is nonzero the
// response headers are committed and errors can only be logged by the
// caller, not converted into an error response.
func Deliver(ctx context.Context, w http.ResponseWriter, artifact *domain.Artifact, req domain.ExtractionRequest) (int64, error) {
	defer func() {
		if err := artifact.Remove(); err != nil {
			logging.Warnf("artifact cleanup %s: %v", artifact.ID, err)
		}
	}()

	f, err := os.Open(artifact.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDeliveryRead, err)
	}
	defer f.Close()

	w.Header().Set("Content-Type", req.ContentType())
	w.Header().Set("Content-Disposition", ContentDisposition(req.Title, req.Ext()))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, chunkSize)
	var written int64

	for {
		select {
		case <-ctx.Done():
			// Client walked away; cleanup still runs.
			return written, context.Cause(ctx)
		default:
		}

		n, readErr := f.Read(buf)
		if n > 0 {
			wn, writeErr := w.Write(buf[:n])
			written += int64(wn)
			metrics.BytesStreamedTotal.Add(float64(wn))
			if writeErr != nil {
				return written, writeErr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}
			return written, fmt.Errorf("%w: %v", ErrDeliveryRead, readErr)
		}
	}
}
