package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "lens-inspector/internal/application"
	"lens-inspector/internal/container"
	"lens-inspector/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для контроля качества линз.

📸 Отправьте мне фото линзы, и я найду дефекты поверхности и вынесу вердикт: годная или брак.

📋 Команды:
/check — начать проверку линзы
/blur N — размер размытия фона (75–401)
/threshold N — порог детекции (1–255)
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото линзы
2️⃣ Бот найдёт дефекты: царапины, точки, скопления
3️⃣ Вы получите вердикт и фото с разметкой дефектов

🔍 После анализа:
• Отправьте номер дефекта — увидите его крупным планом
• Отправьте координаты "x y" — бот покажет ближайший дефект
• /blur N и /threshold N меняют чувствительность и перезапускают анализ

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото линзы для проверки на дефекты."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото линзы для проверки на дефекты."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Анализирую изображение..."
	msgNoDefects       = "✅ Дефекты не обнаружены."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgNoAnalysis      = "ℹ️ Сначала отправьте фото линзы для анализа."
	msgBadDefectQuery  = "❓ Отправьте номер дефекта или координаты точки, например: 3 или 120 240."
	msgBadParamValue   = "❓ Укажите целое число, например: /blur 201"
)

// Bot представляет Telegram-бота
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	inspections *app.InspectionService
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		users:       c.UserService,
		inspections: c.InspectionService,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текст без команды: в режиме просмотра — выбор дефекта
	if user.State == entity.StateInspecting {
		b.handleDefectQuery(msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		user.SetState(entity.StateMainMenu)
		b.saveUser(ctx, user)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		if _, err := b.users.BeginCheck(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		if _, err := b.users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	case "blur":
		b.handleParamCommand(ctx, msg, user, "blur")

	case "threshold":
		b.handleParamCommand(ctx, msg, user, "threshold")

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleParamCommand меняет параметр анализа и перезапускает анализ,
// если у пользователя уже есть загруженное фото.
func (b *Bot) handleParamCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User, name string) {
	value, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgBadParamValue)
		return
	}

	if name == "blur" {
		user, err = b.users.SetBlurSize(ctx, user.ID, user.ChatID, value)
	} else {
		user, err = b.users.SetThreshold(ctx, user.ID, user.ChatID, value)
	}
	if err != nil {
		log.Printf("Error updating params: %v", err)
		return
	}

	b.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"⚙️ Параметры анализа: размытие %d, порог %d.",
		user.Params.BlurSize, user.Params.Threshold))

	// Перезапускаем анализ сохранённого фото с новыми параметрами.
	output, err := b.inspections.Reanalyze(ctx, user.ID, user.Params)
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgNoAnalysis)
		return
	}
	b.sendInspection(ctx, msg.Chat.ID, user, output)
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	output, err := b.inspections.ProcessPhoto(ctx, user.ID, imageData, user.Params)
	if err != nil {
		log.Printf("Error inspecting photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		user.SetState(entity.StateMainMenu)
		b.saveUser(ctx, user)
		return
	}

	b.sendInspection(ctx, msg.Chat.ID, user, output)
}

// sendInspection отправляет вердикт, размеченное фото и список дефектов.
func (b *Bot) sendInspection(ctx context.Context, chatID int64, user *entity.User, output *app.InspectionOutput) {
	b.sendPhoto(chatID, "annotated.jpg", output.Annotated, output.Summary)

	defects := output.Result.Defects
	if len(defects) == 0 {
		b.sendMessage(chatID, msgNoDefects)
		user.SetState(entity.StateMainMenu)
		b.saveUser(ctx, user)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(
		"🔍 Найдено дефектов: %d. Отправьте номер (1–%d) или координаты \"x y\", чтобы рассмотреть дефект.",
		len(defects), len(defects)))

	user.SetState(entity.StateInspecting)
	b.saveUser(ctx, user)
}

// handleDefectQuery разбирает выбор дефекта: номер или координаты "x y".
func (b *Bot) handleDefectQuery(msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)

	var view *app.DefectView
	var err error

	switch len(fields) {
	case 1:
		index, convErr := strconv.Atoi(fields[0])
		if convErr != nil {
			b.sendMessage(msg.Chat.ID, msgBadDefectQuery)
			return
		}
		view, err = b.inspections.DefectDetail(msg.From.ID, index)

	case 2:
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			b.sendMessage(msg.Chat.ID, msgBadDefectQuery)
			return
		}
		var index int
		index, err = b.inspections.DefectAt(msg.From.ID, x, y)
		if err == nil {
			view, err = b.inspections.DefectDetail(msg.From.ID, index)
		}

	default:
		b.sendMessage(msg.Chat.ID, msgBadDefectQuery)
		return
	}

	if err != nil {
		log.Printf("Error selecting defect: %v", err)
		b.sendMessage(msg.Chat.ID, msgBadDefectQuery)
		return
	}

	b.sendPhoto(msg.Chat.ID, fmt.Sprintf("defect_%d.jpg", view.Index), view.Image, view.Caption)
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет картинку с подписью
func (b *Bot) sendPhoto(chatID int64, name string, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}

// saveUser сохраняет пользователя, ошибку только логируем.
func (b *Bot) saveUser(ctx context.Context, user *entity.User) {
	if _, err := b.users.SetState(ctx, user.ID, user.ChatID, user.State); err != nil {
		log.Printf("Error saving user: %v", err)
	}
}
