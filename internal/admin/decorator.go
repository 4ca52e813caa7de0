package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const markerClass = "admin-header"

// Decorator injects the admin chrome into server-rendered pages.
type Decorator struct {
	Title       string
	Heading     string
	Subheading  string
	Links       []NavLink
	SaveMessage string
	LoadingText string
	Save        Shortcut
}

func NewDecorator() *Decorator {
	return &Decorator{
		Title:       "🎓 پنل مدیریت اختصاصی من",
		Heading:     "پنل مدیریت پیشرفته",
		Subheading:  "خوش آمدید به سیستم مدیریت اختصاصی",
		Links:       defaultLinks,
		SaveMessage: "ذخیره تغییرات با موفقیت انجام شد!",
		LoadingText: "در حال بارگذاری...",
		Save:        SaveShortcut,
	}
}

// Decorate returns src with the admin style, header, navigation, loading
// overlay and behaviour script injected. width is the client's viewport
// width if known, 0 otherwise; it sets the initial navigation axis.
// Documents that already carry the header are returned unchanged.
func (d *Decorator) Decorate(src []byte, width int) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	head := findElement(doc, func(n *html.Node) bool { return n.DataAtom == atom.Head })
	body := findElement(doc, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if head == nil || body == nil {
		return src, nil
	}
	if findElement(body, func(n *html.Node) bool { return hasClass(n, markerClass) }) != nil {
		return src, nil
	}

	setTitle(head, d.Title)
	head.AppendChild(rawElement(atom.Style, stylesheet))

	chrome, err := html.ParseFragment(strings.NewReader(d.chrome(NavAxis(width))), body)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	first := body.FirstChild
	for _, n := range chrome {
		body.InsertBefore(n, first)
	}

	overlay, err := html.ParseFragment(strings.NewReader(d.overlay()), body)
	if err != nil {
		return nil, fmt.Errorf("parse loading overlay: %w", err)
	}
	for _, n := range overlay {
		body.AppendChild(n)
	}

	script, err := d.script()
	if err != nil {
		return nil, err
	}
	body.AppendChild(rawElement(atom.Script, script))

	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return out.Bytes(), nil
}

func (d *Decorator) chrome(axis Axis) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s"><h1>%s</h1><p>%s</p></div>`,
		markerClass, template.HTMLEscapeString(d.Heading), template.HTMLEscapeString(d.Subheading))
	fmt.Fprintf(&b, `<nav class="admin-nav" style="flex-direction: %s">`, axis)
	for _, l := range d.Links {
		fmt.Fprintf(&b, `<a href="#%s">%s</a>`,
			template.HTMLEscapeString(l.Anchor), template.HTMLEscapeString(l.Label))
	}
	b.WriteString(`</nav>`)
	return b.String()
}

func (d *Decorator) overlay() string {
	return `<div id="loading-overlay" style="display: none; position: fixed; top: 0; left: 0; width: 100%; height: 100%; ` +
		`background: rgba(0,0,0,0.5); z-index: 1000; align-items: center; justify-content: center;">` +
		`<div style="background: white; padding: 1rem; border-radius: 8px;"><p>` +
		template.HTMLEscapeString(d.LoadingText) + `</p></div></div>`
}

func (d *Decorator) script() (string, error) {
	msg, err := json.Marshal(d.SaveMessage)
	if err != nil {
		return "", fmt.Errorf("encode save message: %w", err)
	}
	key, err := json.Marshal(strings.ToLower(d.Save.Key))
	if err != nil {
		return "", fmt.Errorf("encode save key: %w", err)
	}
	return fmt.Sprintf(behaviour, Breakpoint, d.Save.Ctrl, key, msg), nil
}

func setTitle(head *html.Node, title string) {
	t := findElement(head, func(n *html.Node) bool { return n.DataAtom == atom.Title })
	if t == nil {
		t = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.AppendChild(t)
	}
	for c := t.FirstChild; c != nil; c = t.FirstChild {
		t.RemoveChild(c)
	}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// rawElement builds a style or script element; html.Render writes the
// children of these elements without escaping.
func rawElement(a atom.Atom, content string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	return n
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

const stylesheet = `
body {
    font-family: 'Vazirmatn', -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    direction: rtl;
    background-color: #f5f7fa;
}
.admin-header {
    background: linear-gradient(90deg, #2c3e50 0%, #3498db 100%);
    color: white;
    padding: 1rem;
    border-radius: 8px;
    margin-bottom: 2rem;
    box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}
.admin-nav {
    display: flex;
    gap: 1rem;
    margin-bottom: 1.5rem;
}
.admin-nav a {
    padding: 0.5rem 1rem;
    border-radius: 6px;
    text-decoration: none;
    color: #2c3e50;
    transition: all 0.3s ease;
}
.admin-nav a:hover {
    background-color: #3498db;
    color: white;
}
.admin-section {
    background: white;
    padding: 1.5rem;
    border-radius: 8px;
    box-shadow: 0 2px 4px rgba(0,0,0,0.05);
    margin-bottom: 1.5rem;
}
.progress-fill.green { background-color: green; }
.progress-fill.orange { background-color: orange; }
.progress-fill.gray { background-color: gray; }
`

// behaviour args: breakpoint, ctrl required, key (JSON), message (JSON).
const behaviour = `
(function () {
  var breakpoint = %d;
  var nav = document.querySelector('.admin-nav');

  document.querySelectorAll('.admin-nav a').forEach(function (anchor) {
    anchor.addEventListener('click', function (e) {
      e.preventDefault();
      var target = document.getElementById(anchor.getAttribute('href').substring(1));
      if (target) {
        target.scrollIntoView({ behavior: 'smooth' });
      }
    });
  });

  document.addEventListener('keydown', function (e) {
    if (e.ctrlKey === %t && e.key.toLowerCase() === %s) {
      e.preventDefault();
      alert(%s);
    }
  });

  function layout() {
    if (nav) {
      nav.style.flexDirection = window.innerWidth < breakpoint ? 'column' : 'row';
    }
  }
  window.addEventListener('resize', layout);
  layout();

  window.showLoading = function () {
    document.getElementById('loading-overlay').style.display = 'flex';
  };
  window.hideLoading = function () {
    document.getElementById('loading-overlay').style.display = 'none';
  };
})();
`
