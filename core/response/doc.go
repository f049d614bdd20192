// Package response provides handler.Response constructors for common payloads
// (plain text, HTML, JSON, templ components) and a small HTTP error model.
//
//	func show(ctx *router.Context) handler.Response {
//		if ctx.Request().Header.Get("Accept") == "application/json" {
//			return response.JSON(page)
//		}
//		return response.Templ(view(page))
//	}
//
// Handlers signal failures with response.Error(err). The router hands the error
// to its error handler; ErrorHandler and JSONErrorHandler map any error to an
// HTTPError, honoring errors that implement StatusCode() int.
package response
