// Package forge looks up a branch's pull request on its hosted forge by
// driving a headless browser rather than calling a host-specific REST
// API, so the same code path works across forges without per-host
// client credentials: CompleteKild only needs number, state, and a
// coarse CI/review summary, all of which render on the PR list page.
package forge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/store"
	"golang.org/x/text/width"
)

// Browser wraps a headless rod session, launched lazily so commands
// that never touch a forge (the common case) pay no browser-startup
// cost.
type Browser struct {
	instance *rod.Browser
}

// New launches a headless Chromium instance via rod's bundled launcher.
func New() (*Browser, error) {
	url, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, kilderr.New(kilderr.InvalidConfiguration, "launching headless browser", err)
	}
	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		return nil, kilderr.New(kilderr.InvalidConfiguration, "connecting to browser", err)
	}
	return &Browser{instance: b}, nil
}

// Close releases the underlying browser process.
func (b *Browser) Close() error {
	if b.instance == nil {
		return nil
	}
	return b.instance.Close()
}

// LookupPR navigates to the forge's PR-list page filtered to branch and
// scrapes the first result's number, URL, and state. An empty PRInfo
// with no error means no PR was found for branch.
func (b *Browser) LookupPR(listURL, branch string) (store.PRInfo, bool, error) {
	page, err := b.instance.Page(proto.TargetCreateTarget{URL: listURL})
	if err != nil {
		return store.PRInfo{}, false, kilderr.New(kilderr.InvalidConfiguration, "opening "+listURL, err)
	}
	defer page.Close()

	page = page.Timeout(20 * time.Second)
	if err := page.WaitLoad(); err != nil {
		return store.PRInfo{}, false, kilderr.New(kilderr.InvalidConfiguration, "waiting for PR list to load", err)
	}

	row, err := page.Element(fmt.Sprintf(`[data-branch="%s"]`, branch))
	if err != nil {
		// No matching row: not an error, just "no PR yet".
		return store.PRInfo{}, false, nil
	}

	numberText, _ := row.Attribute("data-pr-number")
	stateText, _ := row.Attribute("data-pr-state")
	href, _ := row.Attribute("href")
	ciText, _ := row.Attribute("data-ci-summary")
	reviewText, _ := row.Attribute("data-review-summary")

	info := store.PRInfo{UpdatedAt: time.Now()}
	if numberText != nil {
		info.Number, _ = strconv.Atoi(strings.TrimSpace(*numberText))
	}
	if stateText != nil {
		info.State = strings.ToLower(strings.TrimSpace(*stateText))
	}
	if href != nil {
		info.URL = *href
	}
	if ciText != nil {
		info.CISummary = normalizeScraped(*ciText)
	}
	if reviewText != nil {
		info.ReviewSummary = normalizeScraped(*reviewText)
	}
	return info, true, nil
}

// normalizeScraped folds full-width characters a forge's rendered page
// sometimes emits (CJK locale UIs, emoji variation markers) down to
// their narrow form before the summary is stored, so CISummary/
// ReviewSummary compare and display consistently regardless of the
// scraped page's locale.
func normalizeScraped(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

// IsMerged reports whether a previously-fetched PRInfo reflects a merged
// pull request.
func IsMerged(info store.PRInfo) bool {
	return info.State == "merged"
}
