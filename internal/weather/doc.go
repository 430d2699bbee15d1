// Package weather resolves a location query into a Snapshot of current
// conditions plus a short 3-hourly forecast.
//
// # Sources
//
// Two sources implement Source:
//
//   - Remote: OpenWeatherMap. A lookup is two sequential requests because the
//     forecast endpoint needs coordinates, which name queries only learn from
//     the current-conditions response.
//   - Mock: demo mode. Waits MockDelay, then synthesizes a shape-compatible
//     snapshot flagged Mock.
//
// Client.Source selects one per request from the API key: empty means Mock.
//
// # Errors
//
// Remote failures are reported as ErrUnauthorized (401), ErrNotFound (404 on
// a name query), or ErrNetwork (everything else). Match them with errors.Is.
//
//	snap, err := client.FetchCurrentAndForecast(ctx, weather.ByName("Paris"), key)
//	switch {
//	case errors.Is(err, weather.ErrUnauthorized):
//		// demote to demo mode
//	case err != nil:
//		// show err
//	}
package weather
