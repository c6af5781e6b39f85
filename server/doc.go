/*
Package server runs an httpd web server from a config.ServerConfig.

Every request passes through, in order:
panic recovery, request IDs, client addresses, request logging,
an optional per-address rate limit, the concurrency bound of MaxServerThreads
and the method check of SupportedMethods.

The request is then offered to each resource.Provider of the config in turn.
The first Provider able to load the path answers it.
A request no Provider can load is answered by errorhandler.NotFound,
a resource.ErrForbidden by errorhandler.Forbidden
and any other failure by errorhandler.InternalServerError.

	cfg, err := config.Load(basePath, tempPath)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg.WithResourceProviders(
		resource.NewFileProvider(cfg.DocumentRootPath(), cfg.DirectoryIndex(), cfg.MimeTypeMapping()),
	))
	if err != nil {
		return err
	}

	return srv.Guide()
*/
package server
