// Package snapshot saves a PNG image of the chart page by rendering it in
// headless Chrome with chromedp. The page pulls the Vega libraries from a
// CDN, so capturing needs network access as well as a local Chrome.
package snapshot
