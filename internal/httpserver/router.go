package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/middleware/ratelimit"
)

type Deps struct {
	System  *SystemHTTP
	Auth    *AuthHTTP
	Users   *UserHTTP
	Movies  *MovieHTTP
	Reviews *ReviewHTTP
	Lists   *ListHTTP

	AuthMW      *authmw.Middleware
	AuthLimiter *ratelimit.PerIP

	// IPExtractor defaults to the peer address when nil.
	IPExtractor echo.IPExtractor
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/", d.System.Root)
	e.GET("/health", d.System.Health)

	requireAuth, requireAdmin := d.AuthMW.RequireAuth, d.AuthMW.RequireAdmin

	auth := e.Group("/auth")
	if d.AuthLimiter != nil {
		auth.Use(d.AuthLimiter.Middleware)
	}
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/logout", d.Auth.Logout, requireAuth)

	users := e.Group("/users", requireAuth)
	users.GET("/me", d.Users.Me)
	users.PUT("/me", d.Users.ChangePassword)
	users.DELETE("/me", d.Users.DeleteMe)

	admin := e.Group("/admin", requireAdmin)
	admin.GET("/users", d.Users.ListUsers)
	admin.PUT("/users/:id/role", d.Users.UpdateRole)
	admin.GET("/stats", d.Users.Stats)
	admin.GET("/lists", d.Users.AllLists)

	movies := e.Group("/movies")
	movies.GET("", d.Movies.ListMovies)
	movies.GET("/top-rated", d.Movies.TopRated)
	movies.GET("/search", d.Movies.SearchMovies)
	movies.GET("/:id", d.Movies.GetMovie)
	movies.GET("/:id/reviews", d.Reviews.MovieReviews)
	movies.POST("/:id/reviews", d.Reviews.CreateReview, requireAuth)
	movies.POST("/sync", d.Movies.Sync, requireAdmin)
	movies.POST("", d.Movies.CreateMovie, requireAdmin)
	movies.PUT("/:id", d.Movies.UpdateMovie, requireAdmin)
	movies.DELETE("/:id", d.Movies.DeleteMovie, requireAdmin)

	reviews := e.Group("/reviews")
	reviews.GET("", d.Reviews.AllReviews)
	reviews.GET("/recent", d.Reviews.RecentReviews)
	reviews.GET("/:id", d.Reviews.GetReview)
	reviews.PUT("/:id", d.Reviews.UpdateReview, requireAuth)
	reviews.DELETE("/:id", d.Reviews.DeleteReview, requireAuth)

	lists := e.Group("/lists")
	lists.POST("", d.Lists.CreateList, requireAuth)
	lists.GET("", d.Lists.MyLists, requireAuth)
	lists.GET("/:id", d.Lists.GetList)
	lists.PUT("/:id", d.Lists.UpdateList, requireAuth)
	lists.DELETE("/:id", d.Lists.DeleteList, requireAuth)
	lists.POST("/:id/movies/:movie_id", d.Lists.AddMovie, requireAuth)
	lists.DELETE("/:id/movies/:movie_id", d.Lists.RemoveMovie, requireAuth)
}
