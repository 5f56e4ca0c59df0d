// Package api maps every backend operation the client uses to one call on
// the shared httpclient. Modules hold no state besides the Doer, so they are
// cheap to copy and safe for concurrent use.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
)

// Doer is satisfied by *httpclient.Client.
type Doer = httpclient.Doer

var ErrAnalysisFailed = errors.New("document analysis failed")

// API groups the modules over one Doer.
type API struct {
	System    System
	Auth      Auth
	Cases     Cases
	Documents Documents
	Evidence  Evidence
	Meetings  Meetings
	Chat      Chat
	Assistant Assistant
}

func New(d Doer) *API {
	return &API{
		System:    System{d: d},
		Auth:      Auth{d: d},
		Cases:     Cases{d: d},
		Documents: Documents{d: d},
		Evidence:  Evidence{d: d},
		Meetings:  Meetings{d: d, JitsiBase: DefaultJitsiBase},
		Chat:      Chat{d: d},
		Assistant: Assistant{d: d},
	}
}

func call(ctx context.Context, d Doer, method, path string, body httpclient.Body, dest any) error {
	return httpclient.Call(ctx, d, httpclient.Request{Method: method, Path: path, Body: body}, dest)
}

// route joins the escaped path segments onto prefix.
func route(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrInvalidArgument, name)
	}
	return nil
}
