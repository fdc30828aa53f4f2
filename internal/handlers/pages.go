package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Page markup is intentionally minimal; layout and styling live elsewhere.
// These handlers exist so the route guard has a real page tree to classify.

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} | readback</title></head>
<body>
<main><h1>{{.Title}}</h1>{{.Body}}</main>
</body>
</html>
`))

var transitionTemplate = template.Must(template.New("transition").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0;url=/home">
<title>Signing you in | readback</title>
</head>
<body><p>Signing you in&hellip;</p></body>
</html>
`))

type pageData struct {
	Title string
	Body  template.HTML
}

// natoAlphabet backs the phonetic-alphabet reference page.
var natoAlphabet = []string{
	"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf",
	"Hotel", "India", "Juliett", "Kilo", "Lima", "Mike", "November",
	"Oscar", "Papa", "Quebec", "Romeo", "Sierra", "Tango", "Uniform",
	"Victor", "Whiskey", "X-ray", "Yankee", "Zulu",
}

func (h *Handlers) page(title, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, pageData{Title: title, Body: template.HTML(body)})
	}
}

func (h *Handlers) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
	}
}

func (h *Handlers) renderTransition(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := transitionTemplate.Execute(w, nil); err != nil {
		log.Error().Err(err).Msg("Failed to render transition page")
	}
}

// HandleAlphabet renders the phonetic alphabet reference.
func (h *Handlers) HandleAlphabet(w http.ResponseWriter, r *http.Request) {
	body := "<ul>"
	for _, word := range natoAlphabet {
		body += "<li>" + word + "</li>"
	}
	body += "</ul>"
	h.render(w, pageData{Title: "Phonetic Alphabet", Body: template.HTML(body)})
}

// HandleHome renders the authenticated home. The ?error=unauthorized
// indicator set by the route guard surfaces here.
func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	body := template.HTML("<p>Welcome back.</p>")
	if r.URL.Query().Get("error") == "unauthorized" {
		body = template.HTML("<p>You are not authorized to view that page.</p>") + body
	}
	h.render(w, pageData{Title: "Home", Body: body})
}

// StaticPages maps each remaining page route to its title and placeholder
// body. The router mounts these through h.page.
func (h *Handlers) StaticPages() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/":               h.page("Readback", "<p>Aviation communication training.</p>"),
		"/about":          h.page("About", "<p>About readback.</p>"),
		"/faq":            h.page("FAQ", "<p>Frequently asked questions.</p>"),
		"/contact":        h.page("Contact", "<p>Get in touch.</p>"),
		"/privacy":        h.page("Privacy Policy", "<p>Privacy policy.</p>"),
		"/terms":          h.page("Terms of Service", "<p>Terms of service.</p>"),
		"/login":          h.page("Sign In", "<p>Sign in to your account.</p>"),
		"/signup":         h.page("Create Account", "<p>Create your account.</p>"),
		"/reset-password": h.page("Reset Password", "<p>Reset your password.</p>"),
		"/activate":       h.page("Activate Account", "<p>Check your email for the activation link.</p>"),
		"/account":        h.page("Account Settings", "<p>Manage your account.</p>"),
		"/admin/users":    h.page("User Administration", "<p>Manage users.</p>"),
	}
}
