package chi

import (
	"context"

	billuc "github.com/politylink/polisearch/internal/usecase/bill"
	memberuc "github.com/politylink/polisearch/internal/usecase/member"
	speechuc "github.com/politylink/polisearch/internal/usecase/speech"
	wordclouduc "github.com/politylink/polisearch/internal/usecase/wordcloud"
)

type fakeBills struct {
	lastParams billuc.Params
	envelope   billuc.Envelope
	err        error
}

func (f *fakeBills) Search(_ context.Context, p billuc.Params) (billuc.Envelope, error) {
	f.lastParams = p
	return f.envelope, f.err
}

type fakeMembers struct {
	lastParams memberuc.Params
	envelope   memberuc.Envelope
	err        error
}

func (f *fakeMembers) Search(_ context.Context, p memberuc.Params) (memberuc.Envelope, error) {
	f.lastParams = p
	return f.envelope, f.err
}

type fakeSpeeches struct {
	lastParams speechuc.Params
	envelope   speechuc.Envelope
	err        error
}

func (f *fakeSpeeches) Search(_ context.Context, p speechuc.Params) (speechuc.Envelope, error) {
	f.lastParams = p
	return f.envelope, f.err
}

type fakeWordcloud struct {
	lastParams wordclouduc.Params
	windows    []wordclouduc.Window
	err        error
}

func (f *fakeWordcloud) Calc(_ context.Context, p wordclouduc.Params) ([]wordclouduc.Window, error) {
	f.lastParams = p
	return f.windows, f.err
}

type fakeStats struct {
	lastPath string
	err      error
}

func (f *fakeStats) Reload(path string) error {
	f.lastPath = path
	return f.err
}
