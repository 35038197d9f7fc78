package common

// DatastarScript is the client runtime driving data-init and SSE patches.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// initExpr is the datastar expression opening the SSE stream at url. url must
// not contain single quotes.
func initExpr(url string) string {
	return "@get('" + url + "')"
}
