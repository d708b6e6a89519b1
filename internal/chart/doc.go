// Package chart builds the faceted bar chart of outcome percentages as a
// Vega-Lite specification and writes it as a standalone HTML page.
//
// The page loads vega, vega-lite and vega-embed from jsDelivr and renders the
// embedded specification in the browser, so it needs network access to
// display but no server.
package chart
