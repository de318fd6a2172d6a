package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const screenshotTimeout = 20 * time.Second

// Screenshot renders the HTML report in headless Chrome and captures a PNG.
// The page is navigated via a data URI so no temp files or local server are
// needed.
func Screenshot(ctx context.Context, html []byte, width, height int) ([]byte, error) {
	if len(html) == 0 {
		return nil, fmt.Errorf("empty report html")
	}
	if width <= 0 {
		width = 1000
	}
	if height <= 0 {
		height = 820
	}

	parent, cancel := chromedp.NewContext(ctx)
	defer cancel()
	timeoutCtx, cancelTimeout := context.WithTimeout(parent, screenshotTimeout)
	defer cancelTimeout()

	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)
	var screenshot []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURI),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(500 * time.Millisecond), // let echarts finish animating
		chromedp.FullScreenshot(&screenshot, 90),
	}
	if err := chromedp.Run(timeoutCtx, tasks); err != nil {
		return nil, fmt.Errorf("report screenshot: %w", err)
	}
	return screenshot, nil
}
