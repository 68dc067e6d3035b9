package controllers

// APIResponse 统一API响应结构
// Status 为业务状态码：0成功，其余沿用HTTP语义（400/401/404/500）
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data}
}

// BadRequestResponse 参数错误响应
func BadRequestResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 400, Msg: msg, Data: data}
}

// UnauthorizedResponse 未授权响应
func UnauthorizedResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 401, Msg: msg, Data: data}
}

// NotFoundResponse 资源不存在响应
func NotFoundResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 404, Msg: msg, Data: data}
}

// TooManyRequestsResponse 请求过于频繁响应
func TooManyRequestsResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 429, Msg: msg, Data: data}
}

// InternalErrorResponse 服务器内部错误响应
func InternalErrorResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 500, Msg: msg, Data: data}
}
