package audit

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Category names one of the four independently scored groups.
type Category string

const (
	Security      Category = "security"
	SEO           Category = "seo"
	Performance   Category = "performance"
	Accessibility Category = "accessibility"
)

// Categories lists every scored category.
var Categories = []Category{Security, SEO, Performance, Accessibility}

// securityHeaderPoints is awarded per present security header, up to the
// check's Points.
const securityHeaderPoints = 10

// Finding is one pass or issue produced by a check. Points only count for passes.
type Finding struct {
	Pass    bool
	Message string
	Points  int
}

func pass(points int, msg string) Finding { return Finding{Pass: true, Message: msg, Points: points} }
func issue(msg string) Finding            { return Finding{Message: msg} }

// Page bundles what the checks look at for one audit.
type Page struct {
	URL      string
	Response Response
	Doc      Document
	Robots   RobotsProbe
	Config   Config
}

func (p *Page) https() bool { return strings.HasPrefix(p.URL, "https://") }

// Check is one entry of the evaluation sequence. Run may return no finding,
// one finding, or (for the header scan) a pass followed by an issue.
type Check struct {
	ID       string
	Category Category
	// Points is the score a passing finding awards; for the header scan it is the cap.
	Points int
	Run    func(p *Page, points int) []Finding
}

// Checks returns the checks in evaluation order. The order decides which
// messages survive truncation of passes, issues and recommendations.
func Checks() []Check {
	return []Check{
		{ID: "https", Category: Security, Points: 25, Run: checkHTTPS},
		{ID: "hsts", Category: Security, Points: 10, Run: checkHSTS},
		{ID: "security-headers", Category: Security, Points: 40, Run: checkSecurityHeaders},
		{ID: "mixed-content", Category: Security, Points: 25, Run: checkMixedContent},
		{ID: "title", Category: SEO, Points: 25, Run: checkTitle},
		{ID: "meta-description", Category: SEO, Points: 25, Run: checkDescription},
		{ID: "headings", Category: SEO, Points: 15, Run: checkHeadings},
		{ID: "canonical", Category: SEO, Points: 10, Run: checkCanonical},
		{ID: "robots-txt", Category: SEO, Points: 10, Run: checkRobots},
		{ID: "page-size", Category: Performance, Points: 25, Run: checkPageSize},
		{ID: "caching", Category: Performance, Points: 20, Run: checkCaching},
		{ID: "resource-count", Category: Performance, Points: 15, Run: checkResourceCount},
		{ID: "image-dimensions", Category: Performance, Points: 10, Run: checkImageDimensions},
		{ID: "compression", Category: Performance, Points: 15, Run: checkCompression},
		{ID: "alt-text", Category: Accessibility, Points: 40, Run: checkAltText},
	}
}

func checkHTTPS(p *Page, points int) []Finding {
	if p.https() {
		return []Finding{pass(points, "Uses HTTPS")}
	}
	return []Finding{issue("Site is not using HTTPS (use TLS)")}
}

func checkHSTS(p *Page, points int) []Finding {
	if p.https() && p.Response.Headers.Has("strict-transport-security") {
		return []Finding{pass(points, "HSTS enabled")}
	}
	return nil
}

func checkSecurityHeaders(p *Page, points int) []Finding {
	var present, missing []string
	for _, h := range p.Config.SecurityHeaders {
		if p.Response.Headers.Has(h) {
			present = append(present, h)
		} else {
			missing = append(missing, h)
		}
	}

	var out []Finding
	if len(present) > 0 {
		out = append(out, pass(
			min(points, securityHeaderPoints*len(present)),
			"Security headers present: "+strings.Join(present, ", "),
		))
	}
	if len(missing) > 0 {
		out = append(out, issue("Missing headers: "+strings.Join(missing, ", ")))
	}
	return out
}

func checkMixedContent(p *Page, points int) []Finding {
	if !p.https() {
		return nil
	}

	var insecure int
	for _, el := range p.Doc.FindWithAttr("src", "href") {
		ref, _ := el.Attr("src")
		if ref == "" {
			ref, _ = el.Attr("href")
		}
		if strings.HasPrefix(ref, "http://") {
			insecure++
		}
	}

	if insecure > 0 {
		return []Finding{issue(fmt.Sprintf("Mixed content: %d http:// resources found", insecure))}
	}
	return []Finding{pass(points, "No mixed content found")}
}

func checkTitle(p *Page, points int) []Finding {
	n := utf8.RuneCountInString(pageTitle(p.Doc))
	if n > 0 && n >= p.Config.TitleMinLen && n <= p.Config.TitleMaxLen {
		return []Finding{pass(points, "SEO: Title present with good length")}
	}
	return []Finding{issue(fmt.Sprintf("SEO: Missing or poor title (%d–%d chars recommended)",
		p.Config.TitleMinLen, p.Config.TitleMaxLen))}
}

func checkDescription(p *Page, points int) []Finding {
	n := utf8.RuneCountInString(metaDescription(p.Doc))
	if n > 0 && n >= p.Config.DescriptionMinLen && n <= p.Config.DescriptionMaxLen {
		return []Finding{pass(points, "SEO: Meta description present with good length")}
	}
	return []Finding{issue(fmt.Sprintf("SEO: Add a meta description (%d–%d chars)",
		p.Config.DescriptionMinLen, p.Config.DescriptionMaxLen))}
}

func checkHeadings(p *Page, points int) []Finding {
	switch len(p.Doc.FindAll("h1")) {
	case 1:
		return []Finding{pass(points, "SEO: Single H1 present")}
	case 0:
		return []Finding{issue("SEO: No H1 found (add one main heading)")}
	default:
		return []Finding{issue("SEO: Multiple H1s found (keep exactly one)")}
	}
}

// checkCanonical only inspects the first canonical link; absence is not an issue.
func checkCanonical(p *Page, points int) []Finding {
	for _, link := range p.Doc.FindAll("link") {
		rel, _ := link.Attr("rel")
		if !slices.Contains(strings.Fields(rel), "canonical") {
			continue
		}
		if href, _ := link.Attr("href"); href != "" {
			return []Finding{pass(points, "SEO: Canonical link present")}
		}
		return nil
	}
	return nil
}

func checkRobots(p *Page, points int) []Finding {
	if p.Robots.Found() {
		return []Finding{pass(points, "SEO: robots.txt found")}
	}
	return []Finding{issue("SEO: robots.txt not found")}
}

func checkPageSize(p *Page, points int) []Finding {
	size := p.Response.Size()
	if size <= p.Config.MaxPageBytes {
		return []Finding{pass(points, fmt.Sprintf("Page size OK: %s KB", kilobytes(size)))}
	}
	return []Finding{issue(fmt.Sprintf("Large page: %s KB (optimize images/assets)", kilobytes(size)))}
}

func checkCaching(p *Page, points int) []Finding {
	for _, h := range p.Config.CacheHeaders {
		if p.Response.Headers.Has(h) {
			return []Finding{pass(points, "Uses caching headers")}
		}
	}
	return []Finding{issue("No caching headers (add Cache-Control/ETag/Last-Modified)")}
}

func checkResourceCount(p *Page, points int) []Finding {
	n := resourceCount(p.Doc)
	if n <= p.Config.MaxResources {
		return []Finding{pass(points, "Reasonable number of resources")}
	}
	return []Finding{issue(fmt.Sprintf("Heavy page: %d resources (reduce requests)", n))}
}

// checkImageDimensions treats an empty width or height as missing.
func checkImageDimensions(p *Page, points int) []Finding {
	var missing int
	for _, img := range p.Doc.FindAll("img") {
		w, _ := img.Attr("width")
		h, _ := img.Attr("height")
		if w == "" || h == "" {
			missing++
		}
	}
	if missing == 0 {
		return []Finding{pass(points, "Images set width/height (better CLS)")}
	}
	return []Finding{issue(fmt.Sprintf("%d images missing width/height", missing))}
}

func checkCompression(p *Page, points int) []Finding {
	enc := strings.ToLower(p.Response.Headers.Get("content-encoding"))
	for _, want := range p.Config.CompressionEncodings {
		if strings.Contains(enc, want) {
			return []Finding{pass(points, "Response compressed")}
		}
	}
	return []Finding{issue("No compression (enable gzip/br)")}
}

// checkAltText counts only images with no alt attribute at all; alt="" marks
// a decorative image and is accepted.
func checkAltText(p *Page, points int) []Finding {
	var missing int
	for _, img := range p.Doc.FindAll("img") {
		if _, ok := img.Attr("alt"); !ok {
			missing++
		}
	}
	if missing == 0 {
		return []Finding{pass(points, "All images have alt text")}
	}
	return []Finding{issue(fmt.Sprintf("%d images missing alt text", missing))}
}

func pageTitle(doc Document) string {
	return strings.TrimSpace(doc.Title())
}

func metaDescription(doc Document) string {
	for _, meta := range doc.FindAll("meta") {
		if name, _ := meta.Attr("name"); name == "description" {
			content, _ := meta.Attr("content")
			return strings.TrimSpace(content)
		}
	}
	return ""
}

func resourceCount(doc Document) int {
	return len(doc.FindAll("img", "script", "link"))
}

func kilobytes(n int) string {
	return fmt.Sprintf("%.1f", float64(n)/1024)
}
