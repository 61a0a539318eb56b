package web

import "net/http"

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "index.html", &PageData{Title: "Tržnica"})
}

// EducationPage handles GET /education.
func (s *Server) EducationPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "education.html", &PageData{Title: "Education"})
}

// CrisisPage handles GET /crisis.
func (s *Server) CrisisPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "crisis.html", &PageData{Title: "Crisis support"})
}
