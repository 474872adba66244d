package omnicasa

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantKind    EnvelopeKind
		wantPayload string
		wantCode    int
		wantSuccess bool
		wantErr     bool
	}{
		{
			name:        "wrapped with items",
			body:        `{"FooJsonResult":{"Code":0,"Success":true,"Message":"","Value":{"Items":[1,2,3],"Total":3}}}`,
			wantKind:    EnvelopeWrapped,
			wantPayload: `[1,2,3]`,
			wantSuccess: true,
		},
		{
			name:        "wrapped with null items",
			body:        `{"FooJsonResult":{"Success":true,"Value":{"Items":null,"Total":0}}}`,
			wantKind:    EnvelopeWrapped,
			wantPayload: `{"Items":null,"Total":0}`,
			wantSuccess: true,
		},
		{
			name:        "wrapped array value",
			body:        `{"FooJsonResult":{"Success":true,"Value":[4,5]}}`,
			wantKind:    EnvelopeWrapped,
			wantPayload: `[4,5]`,
			wantSuccess: true,
		},
		{
			name:     "declared failure",
			body:     `{"FooJsonResult":{"Code":3,"Success":false,"Message":"Invalid customer"}}`,
			wantKind: EnvelopeWrapped,
			wantCode: 3,
			wantErr:  true,
		},
		{
			name:     "failure code as string",
			body:     `{"FooJsonResult":{"Code":"4","Success":0}}`,
			wantKind: EnvelopeWrapped,
			wantCode: 4,
			wantErr:  true,
		},
		{
			name:     "wrapped result is not an object",
			body:     `{"FooJsonResult":"broken","Value":{"a":1}}`,
			wantKind: EnvelopeWrapped,
		},
		{
			name:        "empty result falls back to bare value",
			body:        `{"FooJsonResult":[],"Value":{"a":1}}`,
			wantKind:    EnvelopeBare,
			wantPayload: `{"a":1}`,
		},
		{
			name:        "null result falls back to bare value",
			body:        `{"FooJsonResult":null,"Value":{"a":1}}`,
			wantKind:    EnvelopeBare,
			wantPayload: `{"a":1}`,
		},
		{name: "result key is case-sensitive", body: `{"foojsonresult":{"Value":{"a":1}}}`, wantKind: EnvelopeEmpty},
		{name: "bare array value", body: `{"Value":[1]}`, wantKind: EnvelopeEmpty},
		{name: "empty object", body: `{}`, wantKind: EnvelopeEmpty},
		{name: "no body", body: ``, wantKind: EnvelopeEmpty},
		{name: "garbage", body: `not json`, wantKind: EnvelopeEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := DecodeEnvelope("FooJson", []byte(tt.body))
			assert.Equal(t, tt.wantKind, env.Kind, env.Kind.String())
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantSuccess, env.Success)
			if tt.wantPayload == "" {
				assert.Nil(t, env.Payload())
			} else {
				assert.JSONEq(t, tt.wantPayload, string(env.Payload()))
			}
			if tt.wantErr {
				assert.Error(t, env.Err())
			} else {
				assert.NoError(t, env.Err())
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	env := DecodeEnvelope("GetPersonJson", []byte(`{"GetPersonJsonResult":{"Code":7,"Success":false,"Message":"No access"}}`))
	assert.EqualError(t, env.Err(), "omnicasa GetPersonJson failed: code=7, message=No access")
}

func TestCacheable(t *testing.T) {
	tests := []struct {
		endpoint string
		want     bool
	}{
		{"GetGoalList", true},
		{"GetPropertyList", true},
		{"GetPerson", false},
		{"GetPersonJson", false},
		{"CheckPersonLogin", false},
		{"GetVisitStatisticOfProperty", false},
		{"GetMediaObjectStatisticsGraphList", false},
		{"GetDemandPerson", false},
		{"getperson", true},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, Cacheable(tt.endpoint))
		})
	}
}

func TestDecode(t *testing.T) {
	type goal struct {
		ID   int
		Name string
	}

	var goals []goal
	require.NoError(t, Decode(json.RawMessage(`[{"ID":1,"Name":"Sale"},{"ID":2,"Name":"Rent"}]`), &goals))
	assert.Equal(t, []goal{{1, "Sale"}, {2, "Rent"}}, goals)

	keep := []goal{{9, "untouched"}}
	require.NoError(t, Decode(nil, &keep))
	require.NoError(t, Decode(json.RawMessage(`null`), &keep))
	assert.Equal(t, []goal{{9, "untouched"}}, keep)

	assert.Error(t, Decode(json.RawMessage(`{"ID":"x"}`), &goal{}))
}

func TestNamespacesDispatchToEndpoints(t *testing.T) {
	fs := newFakeService(t, `{"Value":{}}`)
	c, _ := newTestClient(fs, WithCaching(false))
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() (json.RawMessage, error)
		path  string
		param string
	}{
		{"goals", func() (json.RawMessage, error) { return c.Settings.Goals(ctx, nil) }, "/GetGoalListJson", ""},
		{"cities", func() (json.RawMessage, error) { return c.Settings.Cities(ctx, nil) }, "/GetCityListJson", ""},
		{"property types", func() (json.RawMessage, error) { return c.Settings.PropertyTypes(ctx, nil) }, "/GetTypeOfPropertyListJson", ""},
		{"substatuses", func() (json.RawMessage, error) { return c.Settings.Substatuses(ctx, nil) }, "/GetSubstatusListJson", ""},
		{"regions", func() (json.RawMessage, error) { return c.Settings.Regions(ctx, nil) }, "/GetRegionListJson", ""},
		{"countries", func() (json.RawMessage, error) { return c.Settings.Countries(ctx, nil) }, "/GetCountryListJson", ""},
		{"properties", func() (json.RawMessage, error) { return c.General.Properties(ctx, Params{"Limit1": 10}) }, "/GetPropertyListJson", `"Limit1":10`},
		{"property", func() (json.RawMessage, error) { return c.General.Property(ctx, 42, nil) }, "/GetPropertyByIDJson", `"ID":42`},
		{"projects", func() (json.RawMessage, error) { return c.General.Projects(ctx, nil) }, "/GetProjectListJson", ""},
		{"project", func() (json.RawMessage, error) { return c.General.Project(ctx, 5, nil) }, "/GetProjectByIDJson", `"ID":5`},
		{"login", func() (json.RawMessage, error) { return c.General.CheckPersonLogin(ctx, "jan", "pw") }, "/CheckPersonLoginJson", `"Login":"jan"`},
		{"person", func() (json.RawMessage, error) { return c.General.Person(ctx, nil) }, "/GetPersonJson", ""},
		{"contact", func() (json.RawMessage, error) { return c.General.ContactOnMe(ctx, nil) }, "/ContactOnMeJson", ""},
		{"contact project", func() (json.RawMessage, error) { return c.General.ContactOnMeProject(ctx, nil) }, "/ContactOnMeProjectJson", ""},
		{"demand register", func() (json.RawMessage, error) { return c.General.DemandRegister(ctx, nil) }, "/DemandRegisterJson", ""},
		{"unsubscribe", func() (json.RawMessage, error) { return c.General.UnsubscribeDemandPerson(ctx, nil) }, "/UnsubscribeDemandPersonJson", ""},
		{"demand person", func() (json.RawMessage, error) { return c.General.DemandPerson(ctx, nil) }, "/GetDemandPersonJson", ""},
		{"visits", func() (json.RawMessage, error) { return c.General.VisitStatistics(ctx, 8, nil) }, "/GetVisitStatisticOfPropertyJson", `"PropertyID":8`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.NoError(t, err)
			path, sent := fs.Last()
			assert.Equal(t, tt.path, path)
			assert.Contains(t, sent, tt.param)
		})
	}
}

func TestPropertyDoesNotMutateCallerParams(t *testing.T) {
	fs := newFakeService(t, `{"Value":{}}`)
	c, _ := newTestClient(fs)
	params := Params{"Language": "fr"}

	_, err := c.General.Property(context.Background(), 1, params)
	require.NoError(t, err)
	assert.Equal(t, Params{"Language": "fr"}, params)
}
