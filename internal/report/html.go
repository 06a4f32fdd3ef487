package report

import (
	"fmt"
	"io"

	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/itinerary"
	"github.com/pbaille/trip/internal/maplink"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const style = `body{font-family:serif;max-width:40rem;margin:2rem auto;color:#333}
h2{border-bottom:1px solid #ddd}
li.done{color:#999;text-decoration:line-through}
.meta{color:#888;font-size:.85em}`

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// withText creates an element holding a single text child
func withText(a atom.Atom, s string, attrs ...html.Attribute) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(textNode(s))
	return n
}

// WriteHTML renders the itinerary as a standalone HTML page
func WriteHTML(w io.Writer, title string, days []domain.DaySchedule) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "zh-Hant"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(atom.Title, title))
	head.AppendChild(withText(atom.Style, style))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(atom.H1, title))

	var all []domain.Activity
	for _, d := range days {
		body.AppendChild(daySection(d))
		all = append(all, d.Activities...)
	}
	body.AppendChild(expenseSection(Expenses(all, domain.JPY)))

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func daySection(d domain.DaySchedule) *html.Node {
	sec := element(atom.Section, attr("id", d.ID))
	heading := d.DayName
	if heading == "" {
		heading = d.Date
	}
	if d.Weather != nil {
		heading = fmt.Sprintf("%s %s %s %d°C", heading, d.Weather.Icon, d.Weather.Location, d.Weather.Temp)
	}
	sec.AppendChild(withText(atom.H2, heading))
	if d.Weather != nil && d.Weather.Clothing != "" {
		sec.AppendChild(withText(atom.P, d.Weather.Condition+" · "+d.Weather.Clothing, attr("class", "meta")))
	}

	acts := itinerary.SortByTime(d.Activities)
	if len(acts) == 0 {
		sec.AppendChild(withText(atom.P, "本日無行程", attr("class", "meta")))
		return sec
	}

	list := element(atom.Ul)
	for _, a := range acts {
		list.AppendChild(activityItem(a))
	}
	sec.AppendChild(list)
	return sec
}

func activityItem(a domain.Activity) *html.Node {
	var li *html.Node
	if a.IsCompleted {
		li = element(atom.Li, attr("class", "done"))
	} else {
		li = element(atom.Li)
	}

	li.AppendChild(textNode(a.Time + " "))
	if a.Location != "" {
		li.AppendChild(withText(atom.A, a.Title, attr("href", maplink.SearchURL(a.Location))))
	} else {
		li.AppendChild(withText(atom.Strong, a.Title))
	}

	meta := " " + a.Category.Label()
	if a.Cost > 0 {
		meta += " " + Money(a.Cost, a.Currency)
	}
	if a.Notes != "" {
		meta += " · " + a.Notes
	}
	li.AppendChild(withText(atom.Span, meta, attr("class", "meta")))
	return li
}

func expenseSection(b Breakdown) *html.Node {
	sec := element(atom.Section, attr("id", "expenses"))
	sec.AppendChild(withText(atom.H2, fmt.Sprintf("旅費分佈 (%s)", b.Currency)))

	if b.Total == 0 {
		sec.AppendChild(withText(atom.P, "尚未記錄日幣支出", attr("class", "meta")))
		return sec
	}

	table := element(atom.Table)
	for _, c := range b.Categories {
		tr := element(atom.Tr)
		tr.AppendChild(withText(atom.Td, c.Label))
		tr.AppendChild(withText(atom.Td, Money(c.Amount, b.Currency)))
		tr.AppendChild(withText(atom.Td, fmt.Sprintf("%.0f%%", c.Share*100)))
		table.AppendChild(tr)
	}
	sec.AppendChild(table)
	sec.AppendChild(withText(atom.P, "總預估花費 "+Money(b.Total, b.Currency)))
	return sec
}
