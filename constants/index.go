package constants

// Mã lỗi trả về cho client (keyError trong response)
const (
	ERR_NOT_FOUND        = "NOT_FOUND"
	ERR_INVALID_INPUT    = "INVALID_INPUT"
	ERR_CONFLICT         = "CONFLICT"
	ERR_POLICY_VIOLATION = "POLICY_VIOLATION"
	ERR_INTERNAL         = "INTERNAL"
)

// Thông báo chung
const (
	ERROR_INTERNAL_ERROR = "Lỗi hệ thống, vui lòng thử lại sau"
	INVALID_INPUT        = "Dữ liệu không hợp lệ"
	MISSING_LOGIN_INPUT  = "Thiếu email hoặc mật khẩu"
	INVALID_CREDENTIALS  = "Email hoặc mật khẩu không đúng"
	EMAIL_ALREADY_EXISTS = "Email đã được đăng ký"
	UNAUTHORIZED         = "Vui lòng đăng nhập"
	FORBIDDEN            = "FORBIDDEN"
)

// Suất chiếu & ghế
const (
	SHOWTIME_NOT_FOUND    = "Suất chiếu không tồn tại"
	SHOWTIME_NOT_BOOKABLE = "Suất chiếu không còn nhận đặt vé"
	INSUFFICIENT_SEATS    = "Không đủ ghế trống cho suất chiếu này"
	SEAT_NOT_IN_ROOM      = "Ghế không tồn tại trong phòng chiếu"
	SEAT_UNAVAILABLE      = "Ghế đã được giữ hoặc đã bán"
	SEATS_RELEASED        = "Đã trả ghế"
)

// Đặt vé & hóa đơn
const (
	BOOKING_NOT_FOUND    = "Không tìm thấy đơn đặt vé"
	BOOKING_NOT_OWNER    = "Đơn đặt vé không thuộc về bạn"
	BOOKING_CANCELLED    = "Đơn đặt vé đã bị hủy trước đó"
	BOOKING_USED         = "Vé đã được sử dụng, không thể hủy"
	TOO_LATE_TO_CANCEL   = "Chỉ được hủy trước giờ chiếu ít nhất 60 phút"
	INVOICE_NOT_FOUND    = "Không tìm thấy hóa đơn"
	TICKET_NOT_FOUND     = "Vé không hợp lệ"
	TICKET_NOT_CONFIRMED = "Vé chưa thanh toán hoặc đã hủy"
	SHOWTIME_ALREADY_RUN = "Suất chiếu đã qua"
)

// Khuyến mãi
const (
	PROMOTION_NOT_FOUND    = "Mã khuyến mãi không hợp lệ hoặc đã hết hạn"
	PROMOTION_MIN_PURCHASE = "Chưa đạt giá trị đơn hàng tối thiểu"
	PROMOTION_CODE_EXISTS  = "Mã khuyến mãi đã tồn tại"
	PROMOTION_IN_USE       = "Không thể xóa khuyến mãi đang có đơn đặt vé"
)

// Thuế hóa đơn cố định 12%
const TAX_RATE = 0.12
