package marketapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const defaultPageSize = 20

// Client talks to the market price-comparison API. It implements
// ports.StoreLocator and ports.ProductSearcher.
//
// The HTTP session is shared, long-lived state owned by the caller:
// built once at process start, reused across all tool invocations, and
// closed once at shutdown. The client is safe for concurrent use.
type Client struct {
	session    *http.Client
	nearestURL string
	searchURL  string
	pageSize   int
	log        *slog.Logger
}

func NewClient(session *http.Client, nearestURL, searchURL string, pageSize int, logger *slog.Logger) (*Client, error) {
	if nearestURL == "" || searchURL == "" {
		return nil, errors.New("marketapi: nearest and search URLs must be non-empty")
	}

	if session == nil {
		session = &http.Client{Timeout: 30 * time.Second}
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		session:    session,
		nearestURL: nearestURL,
		searchURL:  searchURL,
		pageSize:   pageSize,
		log:        logger,
	}, nil
}
