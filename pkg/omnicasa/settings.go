package omnicasa

import (
	"context"
	"encoding/json"
)

// Settings groups the reference-data lists of an Omnicasa office.
type Settings struct {
	client *Client
}

func (s *Settings) Goals(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.client.MakeRequest(ctx, "GetGoalList", params)
}

func (s *Settings) Cities(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.client.MakeRequest(ctx, "GetCityList", params)
}

func (s *Settings) PropertyTypes(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.client.MakeRequest(ctx, "GetTypeOfPropertyList", params)
}

func (s *Settings) Substatuses(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.client.MakeRequest(ctx, "GetSubstatusList", params)
}

func (s *Settings) Regions(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.client.MakeRequest(ctx, "GetRegionList", params)
}

func (s *Settings) Countries(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.client.MakeRequest(ctx, "GetCountryList", params)
}
