package omnicasa

import (
	"context"
	"encoding/json"
)

// General groups the property, project and person operations.
type General struct {
	client *Client
}

// with copies params and sets key, so caller maps are never mutated.
func with(params Params, key string, value interface{}) Params {
	out := make(Params, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out[key] = value
	return out
}

func (g *General) Properties(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetPropertyList", params)
}

// Property fetches a single property by its Omnicasa ID.
func (g *General) Property(ctx context.Context, id int, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetPropertyByID", with(params, "ID", id))
}

func (g *General) Projects(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetProjectList", params)
}

func (g *General) Project(ctx context.Context, id int, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetProjectByID", with(params, "ID", id))
}

// CheckPersonLogin verifies a person's website credentials. Never served from cache.
func (g *General) CheckPersonLogin(ctx context.Context, login, password string) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "CheckPersonLogin", Params{"Login": login, "Password": password})
}

func (g *General) Person(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetPerson", params)
}

func (g *General) ContactOnMe(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "ContactOnMe", params)
}

func (g *General) ContactOnMeProject(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "ContactOnMeProject", params)
}

func (g *General) DemandRegister(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "DemandRegister", params)
}

func (g *General) UnsubscribeDemandPerson(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "UnsubscribeDemandPerson", params)
}

func (g *General) DemandPerson(ctx context.Context, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetDemandPerson", params)
}

// VisitStatistics returns live visit counters for a property.
func (g *General) VisitStatistics(ctx context.Context, propertyID int, params Params) (json.RawMessage, error) {
	return g.client.MakeRequest(ctx, "GetVisitStatisticOfProperty", with(params, "PropertyID", propertyID))
}
