package controllers

import (
	"net/http"

	"github.com/ecomai/backend-go/internal/services"
)

// OrderController 订单控制器
type OrderController struct {
	BaseController
	orderService *services.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

func (c *OrderController) Prepare() {
	if c.orderService == nil {
		c.orderService = services.NewOrderService()
	}
}

// List 处理GET /orders
func (c *OrderController) List() {
	orders, err := c.orderService.ListOrders(c.Ctx.Request.Context())
	if err != nil {
		c.HandleError(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get 处理GET /orders/:order_id
func (c *OrderController) Get() {
	orderID := c.Ctx.Input.Param(":order_id")
	if orderID == "" {
		c.JSONError(http.StatusBadRequest, "Invalid order id")
		return
	}

	detail, err := c.orderService.GetOrder(c.Ctx.Request.Context(), orderID)
	if err != nil {
		c.HandleError(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetUserOrders 处理GET /users/:user_id/orders
func (c *OrderController) GetUserOrders() {
	userID, ok := c.ParamUint(":user_id")
	if !ok {
		c.JSONError(http.StatusBadRequest, "Invalid user id")
		return
	}

	orders, err := c.orderService.ListUserOrders(c.Ctx.Request.Context(), userID)
	if err != nil {
		c.HandleError(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
