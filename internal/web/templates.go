package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/codex-battleship/internal/app"
	"github.com/jaminalder/codex-battleship/internal/domain"
)

type templates struct {
	index  *template.Template
	game   *template.Template
	boards *template.Template
}

type gameData struct {
	ID         string
	Me         string
	Match      app.MatchView
	Own        *app.BoardView
	Shots      *app.BoardView
	MyTurn     bool
	MustAck    bool
	BoardsHTML template.HTML
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellClass": func(v app.BoardView, x, y int) string { return v.At(x, y).String() },
		"cellSymbol": func(v app.BoardView, x, y int) string {
			switch v.At(x, y) {
			case domain.CellShip:
				return "■"
			case domain.CellHit:
				return "✕"
			case domain.CellMiss:
				return "·"
			case domain.CellPending:
				return "?"
			default:
				return ""
			}
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Battleship</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/json-enc.js"></script>
<style>
.grid{display:inline-grid;grid-template-columns:repeat(10,2em);gap:1px;margin:1em}
.grid>*{width:2em;height:2em;padding:0;border:1px solid #8aa}
.ship{background:#567}.hit{background:#c44}.miss{background:#ccd}.pending{background:#fc6}
</style>
</head><body>{{template "content" .}}</body></html>`))

	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Battleship</h1>
<p>Your key: <code id="me">{{.Key}}</code></p>
<form hx-post="/matches" hx-ext="json-enc" hx-swap="none"
      hx-on::after-request="if(event.detail.successful){location=event.detail.xhr.getResponseHeader('Location')}">
  <label>Opponent key <input name="opponent" required></label>
  <button>Create match</button>
</form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Match {{.ID}}</h1>
<div hx-ext="sse" sse-connect="/matches/{{.ID}}/events">
  <div id="boards" hx-get="/matches/{{.ID}}" hx-trigger="sse:match" hx-swap="innerHTML">{{.BoardsHTML}}</div>
</div>`))
	boards := template.Must(template.New("boards_only").Funcs(funcs()).Parse(boardsTemplate))
	return &templates{index: index, game: game, boards: boards}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const boardsTemplate = `
<div id="status">
  {{if .Match.Finished}}<p>Winner: <code>{{.Match.Winner}}</code></p>
  {{else if .MustAck}}<p>Incoming shot at ({{.Match.Pending.X}},{{.Match.Pending.Y}})
    <button hx-post="/matches/{{.ID}}/ack" hx-swap="none">Acknowledge</button></p>
  {{else if .MyTurn}}<p>Your turn</p>
  {{else}}<p>Turn: <code>{{.Match.Turn}}</code></p>{{end}}
</div>
{{if .Own}}
<div class="grid" id="own">
  {{$v := .Own}}{{range $y := iter $v.Size}}{{range $x := iter $v.Size}}<span class="{{cellClass $v $x $y}}">{{cellSymbol $v $x $y}}</span>{{end}}{{end}}
</div>
{{end}}
{{if .Shots}}
<div class="grid" id="shots">
  {{$v := .Shots}}{{$id := .ID}}{{$turn := .MyTurn}}{{range $y := iter $v.Size}}{{range $x := iter $v.Size}}<button class="{{cellClass $v $x $y}}"
    hx-post="/matches/{{$id}}/shots" hx-ext="json-enc" hx-vals='{"x":{{$x}},"y":{{$y}}}' hx-swap="none"{{if not $turn}} disabled=""{{end}}>{{cellSymbol $v $x $y}}</button>{{end}}{{end}}
</div>
{{end}}
`
