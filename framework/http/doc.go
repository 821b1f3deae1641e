// Package http provides Laravel-compatible request and response helpers.
//
// # Request
//
// Request wraps *http.Request with a fluent API mirroring Laravel's
// Illuminate\Http\Request.
//
//	req := gohttp.NewRequest(r)
//
//	// Whole body as a flat map (JSON object or form post)
//	values, err := req.Fields()
//
//	// Query string
//	q   := req.Query("q")
//	cat := req.Query("category", "all")
//
//	// Route params (requires Chi router)
//	form := req.RouteParam("form")
//
//	// Cookies, headers and content negotiation
//	theme := req.Cookie("theme")
//	req.IsJSON()   // Accept: application/json OR Content-Type: application/json
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
//	res.RedirectBack(r, "/")      // 303 to Referer
//	res.View(engine, 200, "layout", "contact", data)
//
// # ViewEngine
//
//	engine := gohttp.NewViewEngine(os.DirFS("./views"), ".html")
//	body, err := engine.Render("layout", "home", data)
package http
