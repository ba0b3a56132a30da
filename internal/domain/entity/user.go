package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото линзы
	StateInspecting    UserState = "inspecting"     // Просмотр результатов анализа
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя
	Params Params    // Персональные параметры анализа
}

// NewUser создаёт нового пользователя с начальным состоянием
// и параметрами анализа по умолчанию.
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Params: DefaultParams(),
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetParams обновляет параметры анализа, прижимая их к допустимым границам.
func (u *User) SetParams(p Params) {
	u.Params = p.Normalize()
}
