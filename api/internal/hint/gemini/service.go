package gemini

import (
	"net/http"

	"google.golang.org/api/option"

	"cipher-room/api/internal/hint"
)

type Options struct {
	APIKey string
	// BaseURL overrides the public endpoint for both transports.
	BaseURL           string
	Models            []string
	APIVersions       []string
	SystemInstruction string
	Temperature       float32
	// HTTPClient is used by the REST transport only; the SDK drops the API
	// key when given its own client.
	HTTPClient *http.Client
}

// NewService loads both transports behind a single-flight loader. v1beta
// endpoints go through the SDK and every other version through REST. Either
// one alone is enough when the other fails to load.
func NewService(o Options) *hint.Service {
	var sdkOpts []option.ClientOption
	if o.BaseURL != "" {
		sdkOpts = append(sdkOpts, option.WithEndpoint(o.BaseURL))
	}

	loader := hint.NewLoader(hint.AllAvailable(
		NewSDKFactory(o.APIKey, sdkOpts...),
		NewRESTFactory(o.APIKey, o.BaseURL, o.HTTPClient),
	))
	engine := hint.NewEngine(loader, hint.Endpoints(o.Models, o.APIVersions))
	return hint.NewService(o.APIKey, hint.NewBuilder(o.SystemInstruction, o.Temperature), engine)
}
