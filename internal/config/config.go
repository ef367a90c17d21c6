package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション設定
type Config struct {
	DataFile       string `yaml:"data_file,omitempty" mapstructure:"data_file"`             // タスク保存ファイル
	CelebrationURL string `yaml:"celebration_url,omitempty" mapstructure:"celebration_url"` // 初回完了時に開くURL
	NoColor        bool   `yaml:"no_color,omitempty" mapstructure:"no_color"`
	GitHubToken    string `yaml:"github_token,omitempty" mapstructure:"github_token"`
	ProjectOwner   string `yaml:"project_owner,omitempty" mapstructure:"project_owner"`   // org or user
	ProjectNumber  int    `yaml:"project_number,omitempty" mapstructure:"project_number"` // project number
}

// DefaultCelebrationURL は初回完了時に開くデフォルトのURL
const DefaultCelebrationURL = "https://www.youtube.com/shorts/SXHMnicI6Pg"

// EnvPrefix は環境変数のプレフィックス (TASKQUAD_DATA_FILE など)
const EnvPrefix = "TASKQUAD"

const (
	configDirName  = ".taskquad"
	configFileName = "config.yaml"
	dataFileName   = "tasks.json"
)

var keys = []string{"data_file", "celebration_url", "no_color", "github_token", "project_owner", "project_number"}

// Load は設定ファイルのみを読み込む
func Load() (*Config, error) {
	return load(false)
}

// LoadWithPrecedence はデフォルト < 設定ファイル < 環境変数 の順で設定を読み込む
// コマンドラインフラグはCLI側で最後に上書きする
func LoadWithPrecedence() (*Config, error) {
	return load(true)
}

func load(withEnv bool) (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	dataFile, err := DefaultDataFile()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("data_file", dataFile)
	v.SetDefault("celebration_url", DefaultCelebrationURL)

	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		for _, k := range keys {
			if err := v.BindEnv(k); err != nil {
				return nil, fmt.Errorf("failed to bind env for %s: %w", k, err)
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DataFile == "" {
		cfg.DataFile = dataFile
	}
	if cfg.CelebrationURL == "" {
		cfg.CelebrationURL = DefaultCelebrationURL
	}

	return &cfg, nil
}

// Save は設定ファイルを保存する
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	// ディレクトリ作成
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidateGitHub はGitHub連携の設定が有効かどうかを検証する
func (c *Config) ValidateGitHub() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("github_token is required. Run: taskquad github login")
	}
	if c.ProjectOwner == "" || c.ProjectNumber == 0 {
		return fmt.Errorf("project is not configured. Run: taskquad github project select")
	}
	return nil
}

// IsGitHubConfigured はGitHub連携が設定済みかどうかを返す
func (c *Config) IsGitHubConfigured() bool {
	return c.GitHubToken != "" && c.ProjectOwner != "" && c.ProjectNumber > 0
}

// Path は設定ファイルのパスを返す
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultDataFile はデフォルトのタスク保存ファイルのパスを返す
func DefaultDataFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dataFileName), nil
}

// Dir は設定ディレクトリを返す
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}
