package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"farmdesk/internal/model"
)

// Seed 初始数据文件结构（YAML）
type Seed struct {
	Fields    []*model.Field     `yaml:"fields"`
	Crops     []*model.Crop      `yaml:"crops"`
	Staff     []*model.Staff     `yaml:"staff"`
	Vehicles  []*model.Vehicle   `yaml:"vehicles"`
	Equipment []*model.Equipment `yaml:"equipment"`
	Logs      []*model.Log       `yaml:"logs"`
}

// ParseSeed 解析 YAML 种子数据
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("解析种子数据失败: %w", err)
	}
	return &seed, nil
}

// LoadSeedFile 读取并解析种子文件
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取种子文件失败: %w", err)
	}
	return ParseSeed(data)
}
