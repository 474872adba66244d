package omnicasa

import "strings"

// EndpointSuffix is appended to every endpoint name before dispatch.
const EndpointSuffix = "Json"

// uncached lists endpoints whose results are personal or time-sensitive. Their
// responses are still written to the cache but never served from it.
var uncached = map[string]struct{}{
	"CheckPersonLoginJson":                  {},
	"GetPersonJson":                         {},
	"GetPersonListJson":                     {},
	"GetAutomaticHistoriesJson":             {},
	"GetVisitStatisticOfPropertyJson":       {},
	"GetCalendarHistoriesJson":              {},
	"GetMediaObjectStatisticsGraphListJson": {},
	"ContactOnMeJson":                       {},
	"ContactOnMeProjectJson":                {},
	"DemandRegisterJson":                    {},
	"UnsubscribeDemandPersonJson":           {},
	"GetDemandPersonJson":                   {},
}

// Cacheable reports whether a cached response may be served for endpoint.
// Both the bare name and the suffixed name are accepted.
func Cacheable(endpoint string) bool {
	if !strings.HasSuffix(endpoint, EndpointSuffix) {
		endpoint += EndpointSuffix
	}
	_, excluded := uncached[endpoint]
	return !excluded
}
