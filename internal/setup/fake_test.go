package setup

import (
	"context"
	"errors"

	"sz-init/internal/sdk"
)

// fakeClient records the SDK calls made against it.
type fakeClient struct {
	defaultID   int64
	nextID      int64
	template    string
	version     string
	failOn      map[string]error
	calls       []string
	added       []string
	addComments []string
	closed      bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		nextID:   1001,
		template: `{"G2_CONFIG":{}}`,
		version:  `{"PRODUCT_NAME":"Senzing SDK","VERSION":"4.0.0"}`,
		failOn:   map[string]error{},
	}
}

func (f *fakeClient) call(name string) error {
	f.calls = append(f.calls, name)
	return f.failOn[name]
}

func (f *fakeClient) GetDefaultConfigID(ctx context.Context) (int64, error) {
	if err := f.call("GetDefaultConfigID"); err != nil {
		return 0, err
	}
	return f.defaultID, nil
}

func (f *fakeClient) AddConfig(ctx context.Context, definition, comment string) (int64, error) {
	if err := f.call("AddConfig"); err != nil {
		return 0, err
	}
	f.added = append(f.added, definition)
	f.addComments = append(f.addComments, comment)
	return f.nextID, nil
}

func (f *fakeClient) SetDefaultConfigID(ctx context.Context, configID int64) error {
	if err := f.call("SetDefaultConfigID"); err != nil {
		return err
	}
	f.defaultID = configID
	return nil
}

func (f *fakeClient) CreateConfig(ctx context.Context) (sdk.ConfigHandle, error) {
	if err := f.call("CreateConfig"); err != nil {
		return sdk.ConfigHandle{}, err
	}
	return sdk.NewConfigHandle(f.template), nil
}

func (f *fakeClient) ExportConfig(ctx context.Context, h sdk.ConfigHandle) (string, error) {
	if err := f.call("ExportConfig"); err != nil {
		return "", err
	}
	def, ok := h.Ref().(string)
	if !ok {
		return "", errors.New("foreign handle")
	}
	return def, nil
}

func (f *fakeClient) InitEngine(ctx context.Context) error {
	return f.call("InitEngine")
}

func (f *fakeClient) PrimeEngine(ctx context.Context) error {
	return f.call("PrimeEngine")
}

func (f *fakeClient) GetVersion(ctx context.Context) (string, error) {
	if err := f.call("GetVersion"); err != nil {
		return "", err
	}
	return f.version, nil
}

func (f *fakeClient) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

var _ sdk.Client = (*fakeClient)(nil)
