package socket_io

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"GameHub/services/events"
)

/*
 * 'SocketServer' relays the in-process DataChanged bus onto socket.io: every
 * mutation broadcast becomes a "dataChanged" emit carrying only the
 * timestamp, so connected clients re-fetch whatever they render.
 */
type SocketServer struct {
	Sio_server *socket.Server

	mutex       sync.RWMutex
	connections map[string]*socket.Socket

	sub events.Subscription
}

// NewSocketServer returns an unstarted relay.
func NewSocketServer() *SocketServer {
	return &SocketServer{
		connections: make(map[string]*socket.Socket),
	}
}

// Start mounts the socket.io endpoint on the router and subscribes to the
// change bus.
func (sio *SocketServer) Start(router *gin.Engine, bus *events.Bus) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and support
	// slower networks.
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		id := string(client.Id())

		sio.mutex.Lock()
		sio.connections[id] = client
		sio.mutex.Unlock()
		log.Printf("Socket client connected: %s", id)

		client.On("disconnecting", func(...interface{}) {
			sio.mutex.Lock()
			delete(sio.connections, id)
			sio.mutex.Unlock()
		})
	})

	sio.sub = bus.Subscribe(func(ev events.DataChanged) {
		sio.broadcast(ev)
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close detaches from the bus and shuts the socket.io server down.
func (sio *SocketServer) Close() {
	if sio.sub != nil {
		sio.sub.Unsubscribe()
	}
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}

func (sio *SocketServer) broadcast(ev events.DataChanged) {
	sio.mutex.RLock()
	clients := make([]*socket.Socket, 0, len(sio.connections))
	for _, client := range sio.connections {
		clients = append(clients, client)
	}
	sio.mutex.RUnlock()

	for _, client := range clients {
		client.Emit("dataChanged", gin.H{"timestamp": ev.Timestamp.UnixMilli()})
	}
}
