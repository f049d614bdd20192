// Package server runs the HTTP listener for the visit tracker.
//
// Server wraps http.Server with its own listener so the bound address is
// known (useful with ":0" in tests) and Run plugs straight into an errgroup:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Canceling ctx drains in-flight requests for up to ShutdownTimeout. Config
// is read from SERVER_* environment variables.
package server
