// Package httputil provides JSON response helpers, path and query parsing,
// and the request ID, logging and recovery middleware shared by HTTP handlers.
//
//	router.Use(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)
//
//	if err != nil {
//		httputil.WriteBadRequest(w, err.Error())
//		return
//	}
//	httputil.WriteJSON(w, http.StatusOK, results)
package httputil
