// Command formdemo drives the booking form from a terminal against a running
// clinic server (the simulator or the real backend).
//
// Commands, one per line:
//
//	esp <id>      choose a specialty
//	med <id>      choose a doctor
//	data <date>   choose a day (YYYY-MM-DD)
//	hora <HH:MM>  pick a slot
//	conv on|off   toggle insurance
//	plano <id>    choose an insurance plan
//	obs <text>    set the notes
//	enviar        submit the booking
//	ok            acknowledge the confirmation
//	editar <id especialidade> <id médico> <data> <hora>   prefill from a record
//	sair          quit
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
	appconfig "github.com/wolfman30/clinic-booking-form/internal/config"
	"github.com/wolfman30/clinic-booking-form/internal/form"
	"github.com/wolfman30/clinic-booking-form/internal/view/console"
	"github.com/wolfman30/clinic-booking-form/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking form demo",
		"env", cfg.Env,
		"clinic_base_url", cfg.ClinicBaseURL,
	)

	client, err := clinicapi.New(clinicapi.Config{
		BaseURL:     cfg.ClinicBaseURL,
		DoctorsPath: cfg.DoctorsPath,
		SlotsPath:   cfg.SlotsPath,
		SubmitPath:  cfg.SubmitPath,
		Timeout:     cfg.HTTPTimeout,
	})
	if err != nil {
		logger.Error("failed to create clinic client", "error", err)
		os.Exit(1)
	}

	redirect := form.RedirectPolicy{
		Style:             form.RedirectAcknowledge,
		CountdownDuration: cfg.RedirectCountdownDuration,
		CountdownSteps:    cfg.RedirectCountdownSteps,
	}
	if cfg.RedirectStyle == "countdown" {
		redirect.Style = form.RedirectCountdown
	}

	view := console.New(os.Stdout, cfg.ListingURL)
	ctrl, err := form.New(form.Params{
		Gateway:   client,
		Submitter: client,
		View:      view,
		Logger:    logger,
		Specialties: []form.Option{
			{ID: "1", Label: "Cardiologia"},
			{ID: "2", Label: "Dermatologia"},
			{ID: "3", Label: "Pediatria"},
		},
		InsurancePlans: []form.Option{
			{ID: "1", Label: "Vida Plena"},
			{ID: "2", Label: "Saúde Total"},
		},
		Redirect: redirect,
		Metrics:  form.NewMetrics(nil),
	})
	if err != nil {
		logger.Error("failed to create form controller", "error", err)
		os.Exit(1)
	}
	ctrl.Start()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-view.Done():
			return
		default:
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")

		switch cmd {
		case "esp":
			ctrl.SpecialtyChanged(ctx, arg)
		case "med":
			ctrl.DoctorChanged(ctx, arg)
		case "data":
			ctrl.DateChanged(ctx, arg)
		case "hora":
			ctrl.SlotPicked(arg)
		case "conv":
			ctrl.InsuranceToggled(arg == "on")
		case "plano":
			ctrl.InsurancePlanChanged(arg)
		case "obs":
			ctrl.NotesChanged(arg)
		case "enviar":
			ctrl.Submit(ctx)
		case "ok":
			ctrl.AcknowledgeSuccess()
		case "editar":
			parts := strings.Fields(arg)
			if len(parts) != 4 {
				fmt.Println("uso: editar <id especialidade> <id médico> <data> <hora>")
				continue
			}
			if err := ctrl.Hydrate(ctx, form.Record{
				Specialty: parts[0],
				Doctor:    parts[1],
				Date:      parts[2],
				Slot:      parts[3],
			}); err != nil {
				logger.Error("hydration failed", "error", err)
			}
		case "sair":
			return
		case "":
		default:
			fmt.Println("comando desconhecido:", cmd)
		}
	}
}
