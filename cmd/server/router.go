package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/polytex-chat/internal/handlers"
	"github.com/thereayou/polytex-chat/internal/middleware"
	jwtauth "github.com/thereayou/polytex-chat/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *jwtauth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	roomH *handlers.RoomHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users/me", userH.GetMe)
		api.PUT("/users/me", userH.UpdateMe)

		api.GET("/rooms", roomH.GetRooms)
		api.POST("/rooms", roomH.CreateRoom)
		api.DELETE("/rooms/:name", roomH.DeleteRoom)
		api.GET("/rooms/:name/messages", roomH.GetRoomMessages)
		api.PATCH("/rooms/:name/activity", roomH.SetRoomActivity)
		api.POST("/rooms/:name/join", roomH.JoinRoom)
		api.PATCH("/rooms/:name/membership", roomH.SetMembershipActivity)

		api.GET("/favorites", roomH.GetFavorites)
		api.POST("/favorites", roomH.AlterFavorite)
	}

	// WebSocket
	ws := r.Group("/ws")
	ws.Use(middleware.WSAuthMiddleware(jwtMgr, rdb))
	{
		ws.GET("", wsH.HandleWebSocket)
	}
}
