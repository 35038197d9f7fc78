package content

// HostID is the id of the element content nodes render into.
const HostID = "editable-root"

// initExpr opens the update stream at url. updatesURL percent-encodes its
// result, so url never carries a quote.
func initExpr(url string) string {
	return "@get('" + url + "')"
}
