package request

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type SetStockRequest struct {
	// Pointer so an explicit zero survives binding.
	RemainingStock *int32 `json:"remainingStock" binding:"required"`
}
