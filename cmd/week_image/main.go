package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Freeeeeet/clinic_calendar/internal/app"
	"github.com/Freeeeeet/clinic_calendar/internal/config"
	"github.com/Freeeeeet/clinic_calendar/internal/formatting"
	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/Freeeeeet/clinic_calendar/internal/render"
	"github.com/Freeeeeet/clinic_calendar/internal/service"
)

func main() {
	start := flag.String("start", "", "любой день недели, YYYY-MM-DD (по умолчанию текущая неделя)")
	out := flag.String("out", "week.png", "куда сохранить PNG")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Printf("Ошибка создания логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		fmt.Printf("Ошибка подключения к хранилищу: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	bookings := service.NewBookingService(store, model.Workers(cfg.Workers), nil, logger)

	view, err := bookings.Week(ctx, *start)
	if err != nil {
		fmt.Printf("Ошибка загрузки недели: %v\n", err)
		closeStore()
		os.Exit(1)
	}

	imageData, err := render.WeekImage(view)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		closeStore()
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		closeStore()
		os.Exit(1)
	}

	end := view.Dates[len(view.Dates)-1]
	fmt.Printf("✅ Изображение успешно сохранено в %s\n", *out)
	fmt.Printf("📅 Период: %s - %s\n", formatting.FormatDate(view.Start), formatting.FormatDate(end))
	fmt.Printf("📊 Записей: %d\n", view.Grid.Count())
}
