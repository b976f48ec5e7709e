package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jesuspadres/Vibe-Check/model"
	"github.com/jesuspadres/Vibe-Check/shared"
)

// ContentService reduces the two audit sources to bounded plain-text
// excerpts. Fetch failures never escape this boundary: an unreachable
// site becomes a bracketed note value the analysis treats as ordinary
// low-quality content.
type ContentService struct {
	appContext.DefaultService

	httpClient *http.Client
	userAgent  string
}

const CONTENT_SVC = "content_svc"

var (
	scriptBlockRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockRegex  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	timeout := 10 * time.Second
	if timeoutStr := os.Getenv("WEBSITE_FETCH_TIMEOUT"); timeoutStr != "" {
		if d, err := time.ParseDuration(timeoutStr); err == nil && d > 0 {
			timeout = d
		}
	}

	svc.httpClient = &http.Client{Timeout: timeout}
	svc.userAgent = "Mozilla/5.0 (compatible; BrandAuditor/1.0)"
	return svc.DefaultService.Configure(ctx)
}

// Acquire runs the two sub-fetches concurrently and joins them. Both
// always complete with a value; there is no partial-result path.
func (svc *ContentService) Acquire(ctx context.Context, websiteURL, handle, platform string) model.ContentBundle {
	var bundle model.ContentBundle

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bundle.WebsiteText = svc.FetchWebsiteContent(ctx, websiteURL)
		return nil
	})
	g.Go(func() error {
		bundle.SocialText = svc.FetchSocialContent(handle, platform)
		return nil
	})
	_ = g.Wait()

	bundle.MarkLimited(shared.FetchNotePrefix, shared.MinUsableContent)
	return bundle
}

// FetchWebsiteContent GETs the page and strips it down to text. Any
// failure degrades to a note naming the URL.
func (svc *ContentService) FetchWebsiteContent(ctx context.Context, websiteURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, websiteURL, nil)
	if err != nil {
		return fetchFailureNote(websiteURL)
	}
	req.Header.Set("User-Agent", svc.userAgent)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("url", websiteURL).Warn("Website fetch failed")
		websiteFetchFailures.Inc()
		return fetchFailureNote(websiteURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).WithField("url", websiteURL).Warn("Website fetch returned non-success status")
		websiteFetchFailures.Inc()
		return fetchFailureNote(websiteURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).WithField("url", websiteURL).Warn("Website body read failed")
		websiteFetchFailures.Inc()
		return fetchFailureNote(websiteURL)
	}

	text := ReduceHTML(string(body))
	if text == "" {
		return "Unable to extract content from this website."
	}
	return text
}

// FetchSocialContent returns a stand-in note for the handle. Real post
// retrieval lives behind the platform APIs and is outside this service;
// the analysis treats the note as content of variable quality, same as
// the website path.
func (svc *ContentService) FetchSocialContent(handle, platform string) string {
	return fmt.Sprintf("[Social media content for @%s on %s. Note: In production, this would fetch actual posts, bios, and recent content via the %s API.]", handle, platform, platform)
}

// ReduceHTML strips script and style blocks, removes the remaining tags,
// collapses whitespace and caps the excerpt length.
func ReduceHTML(html string) string {
	text := scriptBlockRegex.ReplaceAllString(html, "")
	text = styleBlockRegex.ReplaceAllString(text, "")
	text = htmlTagRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return shared.TruncateOnRuneBoundary(text, shared.MaxWebsiteExcerpt)
}

func fetchFailureNote(websiteURL string) string {
	return fmt.Sprintf("[Note: Could not directly fetch %s. Please analyze based on general knowledge of this brand if available, or provide a general analysis framework.]", websiteURL)
}
