package internal

import (
	"emojidb/internal/models"
	"emojidb/internal/providers"
	"emojidb/internal/services"
	"emojidb/internal/storage"
	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"

	"github.com/spf13/afero"
)

type App struct {
	Config     *structures.Config
	Logger     providers.Logger
	Manager    *storage.Manager
	fs         afero.Fs
	compressor interfaces.CompressorInterface
}

func NewApp(conf *structures.Config, logger providers.Logger, manager *storage.Manager, fs afero.Fs, compressor interfaces.CompressorInterface) *App {
	logger.Debugf(providers.TypeApp, "Starting %s with %s", conf.AppName, conf.Path)
	return &App{
		Config:     conf,
		Logger:     logger,
		Manager:    manager,
		fs:         fs,
		compressor: compressor,
	}
}

// Database loads the snapshot for the configured source.
func (a *App) Database() (*models.EmojiDatabase, error) {
	db, err := a.Manager.Load()
	if err != nil {
		a.Logger.Errorf(providers.TypeApp, "Unable to load emoji database: %s", err)
		return nil, err
	}
	return db, nil
}

func (a *App) Emojis() (services.EmojiServiceInterface, error) {
	db, err := a.Database()
	if err != nil {
		return nil, err
	}
	return services.NewEmojiService(db), nil
}

// WriteHashToken precomputes the source token so later loads skip hashing
// the whole data file.
func (a *App) WriteHashToken() (string, error) {
	token, err := storage.WriteHashToken(a.fs, a.Config.Source.DataFile, a.Config.Source.HashFile)
	if err != nil {
		a.Logger.Errorf(providers.TypeApp, "Unable to write hash token: %s", err)
		return "", err
	}
	a.Logger.Infof(providers.TypeApp, "Wrote hash token %s for %s", token, a.Config.Source.DataFile)
	return token, nil
}

func (a *App) Close() {
	if err := providers.WriteMetrics(a.Config); err != nil {
		a.Logger.Errorf(providers.TypeApp, "Unable to write metrics: %s", err)
	}
	a.compressor.Close()
	a.Logger.Close()
}
